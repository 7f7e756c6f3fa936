package hba

import (
	"fmt"
	"net/netip"
)

// Synthesize renders the canonical rule line that would authorize the
// query. The result is advisory output for the operator; it is never
// written back to a rule file.
func Synthesize(q Query) string {
	if q.IsLocal() {
		return fmt.Sprintf("%-8s%-16s%-16s%s", "local", q.Database, q.Role, q.Method)
	}
	kind := "host"
	if q.ForceSSL {
		kind = "hostssl"
	}
	network := netip.PrefixFrom(q.Addr, q.Addr.BitLen())
	return fmt.Sprintf("%-8s%-16s%-16s%-24s%s", kind, q.Database, q.Role, network, q.Method)
}

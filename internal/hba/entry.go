// Package hba parses host-based-authentication rule files and decides
// whether a hypothetical connection would be authorized by them.
package hba

import "net/netip"

// Kind identifies the rule form of an Entry.
type Kind int

const (
	// Comment is a blank or #-prefixed line, kept only for pass-through.
	Comment Kind = iota
	// Local is a rule for Unix-domain-socket connections.
	Local
	// Host is a network rule indifferent to SSL.
	Host
	// HostSSL is a network rule requiring SSL.
	HostSSL
	// HostNoSSL is a network rule forbidding SSL.
	HostNoSSL
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "comment"
	case Local:
		return "local"
	case Host:
		return "host"
	case HostSSL:
		return "hostssl"
	case HostNoSSL:
		return "hostnossl"
	}
	return "unknown"
}

// IsHost reports whether the kind is one of the network rule forms.
func (k Kind) IsHost() bool {
	return k == Host || k == HostSSL || k == HostNoSSL
}

// Wildcard is the database/role token that matches any name.
const Wildcard = "all"

// Entry is one parsed line of a rule file. Database and Role are either a
// literal name or Wildcard. Method is the full method token sequence,
// compared by exact string equality only. Network is set for host kinds.
// Raw always holds the original line verbatim.
type Entry struct {
	Kind     Kind
	Database string
	Role     string
	Network  netip.Prefix
	Method   string
	Raw      string
}

// MatchesDatabase reports whether the entry applies to the named database.
func (e Entry) MatchesDatabase(name string) bool {
	return e.Database == Wildcard || e.Database == name
}

// MatchesRole reports whether the entry applies to the named role.
func (e Entry) MatchesRole(name string) bool {
	return e.Role == Wildcard || e.Role == name
}

// knownMethods is the closed vocabulary of authentication method names.
var knownMethods = map[string]bool{
	"trust":    true,
	"reject":   true,
	"md5":      true,
	"crypt":    true,
	"password": true,
	"krb5":     true,
	"ident":    true,
	"pam":      true,
}

// KnownMethod reports whether name is in the method vocabulary.
func KnownMethod(name string) bool {
	return knownMethods[name]
}

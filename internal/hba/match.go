package hba

import "net/netip"

// Query is the hypothetical connection under test. A Query whose Addr is
// the zero (invalid) address describes a Unix-domain-socket connection.
// Queries are built once from validated input and never mutated.
type Query struct {
	Addr     netip.Addr
	ForceSSL bool
	Method   string
	Database string
	Role     string
}

// IsLocal reports whether the query describes a local-socket connection.
func (q Query) IsLocal() bool { return !q.Addr.IsValid() }

// Match returns the first entry that authorizes the query, scanning in file
// order. The boolean is an existence predicate over the whole store: its
// value does not depend on which eligible entry comes first.
func (s *Store) Match(q Query) (Entry, bool) {
	for _, e := range s.Entries {
		if matches(e, q) {
			return e, true
		}
	}
	return Entry{}, false
}

// Authorizes reports whether any entry in the store authorizes the query.
func (s *Store) Authorizes(q Query) bool {
	_, ok := s.Match(q)
	return ok
}

func matches(e Entry, q Query) bool {
	if e.Kind == Comment {
		return false
	}
	if !e.MatchesDatabase(q.Database) || !e.MatchesRole(q.Role) {
		return false
	}
	if e.Method != q.Method {
		return false
	}
	if q.IsLocal() {
		return e.Kind == Local
	}
	if !e.Kind.IsHost() {
		return false
	}
	// An SSL-required query is only satisfied by hostssl; a plain query
	// accepts any host kind.
	if q.ForceSSL && e.Kind != HostSSL {
		return false
	}
	return Contains(q.Addr, e.Network)
}

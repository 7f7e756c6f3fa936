package hba

import "fmt"

// Severity is the level of a lint finding. ERROR findings make the lint
// command exit non-zero.
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
)

// Issue is a single lint finding. Code is machine-readable (no spaces) so
// scripts can filter on it.
type Issue struct {
	Severity Severity
	Code     string
	Line     int
	Message  string
}

// LintConfig carries the thresholds for the wide-network checks. Zero
// values fall back to the defaults.
type LintConfig struct {
	WideV4 int
	WideV6 int
}

const (
	defaultWideV4 = 16
	defaultWideV6 = 48
)

// Lint inspects a loaded store for unsafe or dead rules. Every file line
// produces exactly one entry (comments included), so an entry's line number
// is its index plus one.
func Lint(s *Store, cfg LintConfig) []Issue {
	if cfg.WideV4 == 0 {
		cfg.WideV4 = defaultWideV4
	}
	if cfg.WideV6 == 0 {
		cfg.WideV6 = defaultWideV6
	}

	var issues []Issue
	for i, e := range s.Entries {
		line := i + 1
		if e.Kind == Comment {
			continue
		}

		if e.Kind.IsHost() && e.Method == "trust" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     "trustNetwork",
				Line:     line,
				Message:  "trust over the network lets any client log in as any role without a password",
			})
		}

		if e.Method == "password" || e.Method == "crypt" {
			switch e.Kind {
			case Host, HostNoSSL:
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     "cleartextPassword",
					Line:     line,
					Message:  fmt.Sprintf("%s sends credentials without guaranteed TLS; use hostssl or md5", e.Method),
				})
			case HostSSL:
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     "cleartextPassword",
					Line:     line,
					Message:  fmt.Sprintf("%s sends the password in the clear inside TLS; prefer md5", e.Method),
				})
			}
		}

		if e.Kind.IsHost() && e.Method == "ident" {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     "identNetwork",
				Line:     line,
				Message:  "ident over the network trusts the remote identd and is trivially spoofable",
			})
		}

		if e.Kind.IsHost() && isWide(e, cfg) {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     "wideAddress",
				Line:     line,
				Message:  fmt.Sprintf("address range %s is very wide; tighten the network", e.Network),
			})
		}

		if e.Kind.IsHost() && e.Database == Wildcard && e.Role == Wildcard {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     "allDatabasesAllRoles",
				Line:     line,
				Message:  "rule grants network access to every database for every role",
			})
		}
	}

	issues = append(issues, checkShadowed(s)...)
	return issues
}

func isWide(e Entry, cfg LintConfig) bool {
	if e.Network.Addr().Is4() {
		return e.Network.Bits() <= cfg.WideV4
	}
	return e.Network.Bits() <= cfg.WideV6
}

// checkShadowed flags later rules fully covered by an earlier rule with a
// different method. Under the server's first-match resolution the earlier
// rule decides and the later one is dead; this tool's existence predicate
// would still consult it, so the pair is exactly where the two readings of
// the file disagree.
func checkShadowed(s *Store) []Issue {
	var issues []Issue
	for j, lower := range s.Entries {
		if lower.Kind == Comment {
			continue
		}
		for i, upper := range s.Entries[:j] {
			if upper.Kind == Comment || upper.Method == lower.Method {
				continue
			}
			if !covers(upper, lower) {
				continue
			}
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     "shadowedRule",
				Line:     j + 1,
				Message:  fmt.Sprintf("rule is fully shadowed by line %d, which matches first with method %s", i+1, upper.Method),
			})
			break
		}
	}
	return issues
}

// covers reports whether every connection matched by lower is also matched
// by upper, ignoring methods.
func covers(upper, lower Entry) bool {
	if !kindCovers(upper.Kind, lower.Kind) {
		return false
	}
	if upper.Database != Wildcard && upper.Database != lower.Database {
		return false
	}
	if upper.Role != Wildcard && upper.Role != lower.Role {
		return false
	}
	if upper.Kind == Local {
		return true
	}
	return networkCovers(upper, lower)
}

func kindCovers(upper, lower Kind) bool {
	if upper == Local || lower == Local {
		return upper == Local && lower == Local
	}
	// host matches connections in either SSL mode, so it covers every
	// host kind; hostssl/hostnossl cover only themselves.
	return upper == Host || upper == lower
}

func networkCovers(upper, lower Entry) bool {
	if upper.Network.Addr().Is4() != lower.Network.Addr().Is4() {
		return false
	}
	return upper.Network.Bits() <= lower.Network.Bits() &&
		Contains(lower.Network.Addr(), upper.Network)
}

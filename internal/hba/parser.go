package hba

import (
	"errors"
	"fmt"
	"strings"
)

// Parse failure kinds. Every ParseLine error wraps exactly one of these.
var (
	ErrUnsupportedSyntax = errors.New("unsupported syntax")
	ErrUnknownRuleType   = errors.New("unknown rule type")
	ErrTooFewFields      = errors.New("not enough fields")
	ErrInvalidMethod     = errors.New("invalid method")
	ErrInvalidAddress    = errors.New("invalid address")
)

// ParseLine parses one rule-file line into an Entry. Blank and #-prefixed
// lines parse to Comment entries. Lines using quoted strings, role lists
// (+) or file inclusions (@) are rejected outright: a file containing them
// cannot be represented by this model.
func ParseLine(line string) (Entry, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{Kind: Comment, Raw: line}, nil
	}
	if strings.ContainsAny(line, `"+@`) {
		return Entry{}, fmt.Errorf("%w: quoting, role lists and file inclusion are not supported", ErrUnsupportedSyntax)
	}

	fields := strings.Fields(line)
	var kind Kind
	switch fields[0] {
	case "local":
		kind = Local
	case "host":
		kind = Host
	case "hostssl":
		kind = HostSSL
	case "hostnossl":
		kind = HostNoSSL
	default:
		return Entry{}, fmt.Errorf("%w %q", ErrUnknownRuleType, fields[0])
	}
	if len(fields) < 4 {
		return Entry{}, fmt.Errorf("%w: got %d, want at least 4", ErrTooFewFields, len(fields))
	}

	entry := Entry{
		Kind:     kind,
		Database: fields[1],
		Role:     fields[2],
		Raw:      line,
	}
	rest := fields[3:]

	if kind.IsHost() {
		var err error
		if strings.Contains(rest[0], "/") {
			entry.Network, err = ParseCIDR(rest[0])
			rest = rest[1:]
		} else {
			if len(rest) < 2 {
				return Entry{}, fmt.Errorf("%w: host rule needs an address and a netmask or a CIDR", ErrTooFewFields)
			}
			entry.Network, err = ParseNetwork(rest[0], rest[1])
			rest = rest[2:]
		}
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
	}

	if len(rest) != 1 {
		return Entry{}, fmt.Errorf("%w: want exactly one method token, got %d", ErrInvalidMethod, len(rest))
	}
	if !KnownMethod(rest[0]) {
		return Entry{}, fmt.Errorf("%w %q", ErrInvalidMethod, rest[0])
	}
	entry.Method = rest[0]
	return entry, nil
}

package hba

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Contains reports whether addr falls inside network. A family mismatch
// (IPv4 candidate against an IPv6 network or vice versa) is a definite
// non-match, never an error.
func Contains(addr netip.Addr, network netip.Prefix) bool {
	if addr.Is4() != network.Addr().Is4() {
		return false
	}
	return network.Contains(addr)
}

// ParseIP parses a bare IPv4 or IPv6 address. IPv4-mapped IPv6 forms are
// normalized to IPv4; zoned addresses are rejected.
func ParseIP(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, fmt.Errorf("invalid address %q", s)
	}
	return addr.Unmap(), nil
}

// ParseCIDR parses an "address/prefixlen" network specification. The prefix
// length must be a bare non-negative integer no larger than the address
// family's bit length.
func ParseCIDR(s string) (netip.Prefix, error) {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return netip.Prefix{}, fmt.Errorf("invalid network %q: missing prefix length", s)
	}
	addr, err := ParseIP(s[:i])
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid network %q", s)
	}
	bits, err := parsePrefixLen(s[i+1:], addr.BitLen())
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid network %q: %w", s, err)
	}
	return netip.PrefixFrom(addr, bits), nil
}

// ParseNetwork parses the separate address + netmask form and converts the
// netmask to an equivalent prefix length. The mask must be of the same
// family as the address and contiguous.
func ParseNetwork(addrToken, maskToken string) (netip.Prefix, error) {
	addr, err := ParseIP(addrToken)
	if err != nil {
		return netip.Prefix{}, err
	}
	mask, err := ParseIP(maskToken)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid netmask %q", maskToken)
	}
	if mask.Is4() != addr.Is4() {
		return netip.Prefix{}, fmt.Errorf("netmask %q does not match address family of %q", maskToken, addrToken)
	}
	bits, err := maskBits(mask)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, bits), nil
}

func parsePrefixLen(s string, max int) (int, error) {
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("prefix length %q is not a non-negative integer", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("prefix length %q is not a non-negative integer", s)
	}
	if n > max {
		return 0, fmt.Errorf("prefix length %d exceeds address size", n)
	}
	return n, nil
}

// maskBits converts a contiguous netmask to its prefix length.
func maskBits(mask netip.Addr) (int, error) {
	bits := 0
	seenZero := false
	for _, b := range mask.AsSlice() {
		for i := 7; i >= 0; i-- {
			if b&(1<<uint(i)) != 0 {
				if seenZero {
					return 0, fmt.Errorf("netmask %s is not contiguous", mask)
				}
				bits++
			} else {
				seenZero = true
			}
		}
	}
	return bits, nil
}

package relay

import (
	"fmt"
	"net/netip"
	"strings"
)

// Family identifies an IP address family.
type Family uint8

const (
	Ipv4 Family = 4
	Ipv6 Family = 6
)

// MalformedRangeError is returned when a published range entry is not a
// syntactically valid CIDR network.
type MalformedRangeError struct {
	Entry string
	Cause error
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("malformed relay range %q: %v", e.Entry, e.Cause)
}

func (e *MalformedRangeError) Unwrap() error {
	return e.Cause
}

// Range is a single published relay egress CIDR block. Network is always the
// masked network address: Network == Network & netmask(Bits).
type Range struct {
	Family  Family
	Network netip.Addr
	Bits    int
}

// ParseRange parses a CIDR string (e.g. "17.0.0.0/8", "2403:300::/32") into
// a Range. Returns *MalformedRangeError on invalid input.
func ParseRange(cidr string) (Range, error) {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return Range{}, &MalformedRangeError{Entry: cidr, Cause: err}
	}

	family := Ipv6
	if prefix.Addr().Is4() {
		family = Ipv4
	}

	return Range{
		Family:  family,
		Network: prefix.Masked().Addr(),
		Bits:    prefix.Bits(),
	}, nil
}

// ParseRanges parses a list of CIDR strings, aborting on the first malformed
// entry. A caller that got an error must not use any partial result.
func ParseRanges(cidrs []string) ([]Range, error) {
	ranges := make([]Range, 0, len(cidrs))
	for _, cidr := range cidrs {
		r, err := ParseRange(cidr)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func (r Range) String() string {
	return fmt.Sprintf("%s/%d", r.Network, r.Bits)
}

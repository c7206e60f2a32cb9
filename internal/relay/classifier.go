package relay

import (
	"net/netip"
	"strings"
)

// Classifier answers relay membership for textual IP addresses against one
// frozen Index. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	index *Index
}

// NewClassifier creates a Classifier over a fully built Index.
func NewClassifier(index *Index) *Classifier {
	return &Classifier{index: index}
}

// IsRelay reports whether ipText is an IP address inside any loaded relay
// range. Input that does not parse as an IP address is never relay; the
// function is total over strings and never returns an error.
func (c *Classifier) IsRelay(ipText string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ipText))
	if err != nil {
		return false
	}

	// Families are disjoint: IPv4-mapped IPv6 literals stay IPv6 here
	// (netip keeps them distinct from Is4 addresses, no unmapping).
	buckets := c.index.v6
	if addr.Is4() {
		buckets = c.index.v4
	}

	for bits, networks := range buckets {
		masked := netip.PrefixFrom(addr, bits).Masked().Addr()
		if _, ok := networks[masked]; ok {
			return true
		}
	}

	return false
}

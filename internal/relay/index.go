package relay

import "net/netip"

// Index is the immutable lookup structure for relay ranges: per address
// family, a map from prefix length to the set of masked network addresses.
// Duplicate ranges collapse into a single set entry.
type Index struct {
	v4 map[int]map[netip.Addr]struct{}
	v6 map[int]map[netip.Addr]struct{}
}

// BuildIndex builds an Index from parsed ranges. The result must be treated
// as read-only; it may be shared between goroutines once built.
func BuildIndex(ranges []Range) *Index {
	idx := &Index{
		v4: make(map[int]map[netip.Addr]struct{}),
		v6: make(map[int]map[netip.Addr]struct{}),
	}

	for _, r := range ranges {
		buckets := idx.v6
		if r.Family == Ipv4 {
			buckets = idx.v4
		}

		networks, ok := buckets[r.Bits]
		if !ok {
			networks = make(map[netip.Addr]struct{})
			buckets[r.Bits] = networks
		}
		networks[r.Network] = struct{}{}
	}

	return idx
}

// RangeCount returns the number of distinct ranges stored for the family.
func (idx *Index) RangeCount(family Family) int {
	count := 0
	for _, networks := range idx.buckets(family) {
		count += len(networks)
	}
	return count
}

// PrefixLengthCount returns the number of distinct prefix lengths stored for
// the family. Lookup cost is proportional to this value.
func (idx *Index) PrefixLengthCount(family Family) int {
	return len(idx.buckets(family))
}

func (idx *Index) buckets(family Family) map[int]map[netip.Addr]struct{} {
	if family == Ipv4 {
		return idx.v4
	}
	return idx.v6
}

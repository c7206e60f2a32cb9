// Package relay implements the privacy-relay egress range classifier.
//
// A classifier is built once from the published list of relay egress CIDR
// ranges and then answers, for arbitrary textual input, whether the input is
// an IP address located inside any published range.
//
// # Model
//
// Ranges are grouped by address family (IPv4/IPv6) and prefix length. For
// each (family, prefix length) pair the index stores the set of masked
// network addresses. A lookup parses the candidate, masks it once per
// distinct prefix length of its family, and tests set membership — O(number
// of distinct prefix lengths), independent of the number of ranges.
//
// # Contract
//
// Classification is a total function over strings: anything that does not
// parse as an IP address is "not relay", never an error. Traffic logs
// routinely contain empty strings, hostnames, and truncated addresses, so
// parse failure is expected input, not an exceptional condition.
//
// The two address families are disjoint. An IPv4-mapped IPv6 literal
// (::ffff:17.1.2.3) is classified as IPv6 and is never tested against IPv4
// ranges; no unmapping is performed.
//
// # Concurrency
//
// The index is immutable after construction and a Classifier holds no other
// state, so one Classifier may be shared by any number of goroutines without
// synchronization. Callers must finish building the index before sharing it.
//
// # Example Usage
//
//	ranges, err := relay.ParseRanges([]string{"17.0.0.0/8", "2403:300::/32"})
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	classifier := relay.NewClassifier(relay.BuildIndex(ranges))
//	classifier.IsRelay("17.1.2.3")   // true
//	classifier.IsRelay("not-an-ip")  // false
package relay

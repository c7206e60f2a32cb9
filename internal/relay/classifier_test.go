package relay

import (
	"errors"
	"sync"
	"testing"
)

func buildClassifier(t *testing.T, cidrs []string) *Classifier {
	t.Helper()

	ranges, err := ParseRanges(cidrs)
	if err != nil {
		t.Fatalf("Failed to parse ranges: %v", err)
	}

	return NewClassifier(BuildIndex(ranges))
}

func TestIsRelay_PublishedRanges(t *testing.T) {
	classifier := buildClassifier(t, []string{"17.0.0.0/8", "2403:300::/32"})

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"IPv4 inside range", "17.1.2.3", true},
		{"IPv4 outside range", "18.1.2.3", false},
		{"IPv6 inside range", "2403:300::1", true},
		{"IPv6 outside range", "2403:301::1", false},
		{"empty string", "", false},
		{"not an IP", "not-an-ip", false},
		{"octet out of range", "999.999.999.999", false},
		{"truncated address", "17.1.2", false},
		{"hostname", "relay.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsRelay(tt.input); got != tt.expected {
				t.Errorf("IsRelay(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsRelay_RangeBoundaries(t *testing.T) {
	classifier := buildClassifier(t, []string{"192.168.0.0/16"})

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lower boundary", "192.168.0.0", true},
		{"upper boundary", "192.168.255.255", true},
		{"just above range", "192.169.0.0", false},
		{"just below range", "192.167.255.255", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsRelay(tt.input); got != tt.expected {
				t.Errorf("IsRelay(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsRelay_FamiliesAreDisjoint(t *testing.T) {
	classifier := buildClassifier(t, []string{"17.0.0.0/8"})

	// An IPv4-mapped IPv6 literal is an IPv6 address and must never be
	// tested against IPv4 ranges.
	if classifier.IsRelay("::ffff:17.1.2.3") {
		t.Error("IPv4-mapped IPv6 literal matched an IPv4-only range")
	}

	// And the other way around: an IPv6 range whose low bits coincide with
	// an IPv4 network must not capture IPv4 queries.
	classifier6 := buildClassifier(t, []string{"::ffff:17.0.0.0/104"})
	if classifier6.IsRelay("17.1.2.3") {
		t.Error("IPv4 address matched an IPv6-only range")
	}
	if !classifier6.IsRelay("::ffff:17.1.2.3") {
		t.Error("IPv4-mapped IPv6 literal did not match its IPv6 range")
	}
}

func TestIsRelay_OverlappingPrefixLengths(t *testing.T) {
	classifier := buildClassifier(t, []string{
		"17.0.0.0/8",
		"17.128.0.0/9",
		"172.224.224.0/28",
	})

	tests := []struct {
		input    string
		expected bool
	}{
		{"17.0.0.1", true},
		{"17.200.0.1", true},
		{"172.224.224.7", true},
		{"172.224.224.16", false},
		{"172.224.225.1", false},
	}

	for _, tt := range tests {
		if got := classifier.IsRelay(tt.input); got != tt.expected {
			t.Errorf("IsRelay(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestIsRelay_Idempotent(t *testing.T) {
	classifier := buildClassifier(t, []string{"17.0.0.0/8"})

	for i := 0; i < 3; i++ {
		if !classifier.IsRelay("17.1.2.3") {
			t.Fatalf("IsRelay changed its answer on call %d", i+1)
		}
		if classifier.IsRelay("ill-formed") {
			t.Fatalf("IsRelay changed its answer for malformed input on call %d", i+1)
		}
	}
}

func TestIsRelay_WhitespaceTolerated(t *testing.T) {
	classifier := buildClassifier(t, []string{"17.0.0.0/8"})

	if !classifier.IsRelay(" 17.1.2.3\n") {
		t.Error("Expected surrounding whitespace to be trimmed before parsing")
	}
}

func TestBuildIndex_DeduplicatesRanges(t *testing.T) {
	once := buildClassifier(t, []string{"17.0.0.0/8"})
	twice := buildClassifier(t, []string{"17.0.0.0/8", "17.0.0.0/8", "17.1.0.0/8"})

	inputs := []string{"17.1.2.3", "18.1.2.3", ""}
	for _, input := range inputs {
		if once.IsRelay(input) != twice.IsRelay(input) {
			t.Errorf("Duplicate ranges changed classification of %q", input)
		}
	}

	ranges, err := ParseRanges([]string{"17.0.0.0/8", "17.0.0.0/8", "17.1.0.0/8"})
	if err != nil {
		t.Fatalf("Failed to parse ranges: %v", err)
	}
	idx := BuildIndex(ranges)
	if count := idx.RangeCount(Ipv4); count != 1 {
		t.Errorf("Expected 1 distinct range after dedup, got %d", count)
	}
}

func TestIndex_Counts(t *testing.T) {
	ranges, err := ParseRanges([]string{
		"17.0.0.0/8",
		"18.0.0.0/8",
		"192.168.0.0/16",
		"2403:300::/32",
	})
	if err != nil {
		t.Fatalf("Failed to parse ranges: %v", err)
	}

	idx := BuildIndex(ranges)

	if count := idx.RangeCount(Ipv4); count != 3 {
		t.Errorf("Expected 3 IPv4 ranges, got %d", count)
	}
	if count := idx.RangeCount(Ipv6); count != 1 {
		t.Errorf("Expected 1 IPv6 range, got %d", count)
	}
	if count := idx.PrefixLengthCount(Ipv4); count != 2 {
		t.Errorf("Expected 2 distinct IPv4 prefix lengths, got %d", count)
	}
	if count := idx.PrefixLengthCount(Ipv6); count != 1 {
		t.Errorf("Expected 1 distinct IPv6 prefix length, got %d", count)
	}
}

func TestParseRange_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"empty string", ""},
		{"no prefix length", "17.0.0.0"},
		{"garbage", "not-a-range"},
		{"bad prefix length", "17.0.0.0/33"},
		{"negative prefix length", "17.0.0.0/-1"},
		{"bad address", "17.0.0.256/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.entry)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.entry)
			}

			var malformed *MalformedRangeError
			if !errors.As(err, &malformed) {
				t.Errorf("Expected *MalformedRangeError, got %T", err)
			}
		})
	}
}

func TestParseRange_MasksHostBits(t *testing.T) {
	r, err := ParseRange("17.1.2.3/8")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if r.String() != "17.0.0.0/8" {
		t.Errorf("Expected host bits to be masked off, got %s", r)
	}
	if r.Family != Ipv4 {
		t.Errorf("Expected family %v, got %v", Ipv4, r.Family)
	}
}

func TestParseRanges_AbortsOnMalformedEntry(t *testing.T) {
	ranges, err := ParseRanges([]string{"17.0.0.0/8", "bogus", "18.0.0.0/8"})
	if err == nil {
		t.Fatal("Expected error for malformed entry")
	}
	if ranges != nil {
		t.Error("Expected no partial result on error")
	}
}

func TestIsRelay_ConcurrentUse(t *testing.T) {
	classifier := buildClassifier(t, []string{"17.0.0.0/8", "2403:300::/32"})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if !classifier.IsRelay("17.1.2.3") {
					t.Error("IsRelay(17.1.2.3) = false under concurrency")
					return
				}
				if classifier.IsRelay("18.1.2.3") {
					t.Error("IsRelay(18.1.2.3) = true under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

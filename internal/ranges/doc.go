// Package ranges ingests the published relay egress range table.
//
// The published table is delimited text with one range per row:
//
//	range,country,region,city[,extra...]
//
// Only the range column participates in classification; the remaining
// columns are descriptive metadata and are discarded. Rows whose first
// column is not plausibly a CIDR (header rows, blanks, comments) are skipped
// at this trimming stage; actual CIDR syntax errors surface later from
// relay.ParseRanges and abort the load, so a partial index is never used.
//
// The package also downloads the table from its published URL with MD5
// change detection, mirroring how remote lists are refreshed out of band.
package ranges

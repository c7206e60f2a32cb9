package ranges

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/relaymark/relaymark/internal/errors"
	"github.com/relaymark/relaymark/internal/log"
	"github.com/relaymark/relaymark/internal/relay"
	"github.com/relaymark/relaymark/internal/utils"
)

// ReadRangeTable reads a delimited range table and returns the CIDR strings
// from its first column. Blank lines, comments and rows whose first column
// does not look like a CIDR are skipped at this stage.
func ReadRangeTable(r io.Reader) ([]string, error) {
	var cidrs []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cidr := strings.TrimSpace(strings.SplitN(line, ",", 2)[0])
		if !strings.Contains(cidr, "/") {
			log.Debugf("Skipping non-CIDR row: %s", line)
			continue
		}

		cidrs = append(cidrs, cidr)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.NewRangesError("failed to read range table", err)
	}

	return cidrs, nil
}

// LoadIndexFromFile reads the range table at path and builds the relay
// index. Any malformed CIDR aborts the load; an index is only returned when
// every surviving row parsed.
func LoadIndexFromFile(path string) (*relay.Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewRangesError("failed to open range table", err)
	}
	defer utils.CloseOrWarn(file)

	cidrs, err := ReadRangeTable(file)
	if err != nil {
		return nil, err
	}

	parsed, err := relay.ParseRanges(cidrs)
	if err != nil {
		return nil, errors.NewRangesError("failed to parse range table", err)
	}

	idx := relay.BuildIndex(parsed)
	log.Debugf("Loaded %d IPv4 and %d IPv6 relay ranges from %s",
		idx.RangeCount(relay.Ipv4), idx.RangeCount(relay.Ipv6), path)

	return idx, nil
}

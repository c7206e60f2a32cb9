package commands

import (
	"flag"

	"github.com/relaymark/relaymark/internal/log"
	"github.com/relaymark/relaymark/internal/ranges"
	"github.com/relaymark/relaymark/internal/relay"
)

func CreateCheckCommand() *CheckCommand {
	cmd := &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}

	cmd.fs.StringVar(&cmd.rangesPath, "ranges", "", "Range table file (bypasses the config file)")

	return cmd
}

// CheckCommand loads the range table, reports index statistics and
// classifies any IP addresses passed as arguments.
type CheckCommand struct {
	fs *flag.FlagSet

	rangesPath string
	ips        []string
}

func (g *CheckCommand) Name() string {
	return g.fs.Name()
}

func (g *CheckCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}
	g.ips = g.fs.Args()

	if g.rangesPath == "" {
		cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
		if err != nil {
			return err
		}
		g.rangesPath = cfg.GetAbsRangesFilePath()
	}

	return nil
}

func (g *CheckCommand) Run() error {
	idx, err := ranges.LoadIndexFromFile(g.rangesPath)
	if err != nil {
		return err
	}

	log.Infof("Range table: %s", g.rangesPath)
	log.Infof("IPv4: %d ranges across %d prefix lengths",
		idx.RangeCount(relay.Ipv4), idx.PrefixLengthCount(relay.Ipv4))
	log.Infof("IPv6: %d ranges across %d prefix lengths",
		idx.RangeCount(relay.Ipv6), idx.PrefixLengthCount(relay.Ipv6))

	classifier := relay.NewClassifier(idx)
	for _, ip := range g.ips {
		log.Infof("%s: relay=%v", ip, classifier.IsRelay(ip))
	}

	return nil
}

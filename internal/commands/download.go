package commands

import (
	"flag"

	"github.com/relaymark/relaymark/internal/config"
	"github.com/relaymark/relaymark/internal/ranges"
)

func CreateDownloadCommand() *DownloadCommand {
	return &DownloadCommand{
		fs: flag.NewFlagSet("download", flag.ExitOnError),
	}
}

type DownloadCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config
}

func (g *DownloadCommand) Name() string {
	return g.fs.Name()
}

func (g *DownloadCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *DownloadCommand) Run() error {
	_, err := ranges.Download(g.cfg)
	return err
}

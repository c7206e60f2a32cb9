package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/relaymark/relaymark/internal/config"
	"github.com/relaymark/relaymark/internal/labeler"
	"github.com/relaymark/relaymark/internal/log"
	"github.com/relaymark/relaymark/internal/ranges"
	"github.com/relaymark/relaymark/internal/relay"
	"github.com/relaymark/relaymark/internal/utils"
)

func CreateClassifyCommand() *ClassifyCommand {
	cmd := &ClassifyCommand{
		fs: flag.NewFlagSet("classify", flag.ExitOnError),
	}

	cmd.fs.StringVar(&cmd.inputPath, "input", "-", "Input file with one row per record (\"-\" for stdin)")
	cmd.fs.StringVar(&cmd.outputPath, "output", "-", "Output file for labeled rows (\"-\" for stdout)")
	cmd.fs.StringVar(&cmd.rangesPath, "ranges", "", "Range table file (bypasses the config file)")
	cmd.fs.IntVar(&cmd.workers, "workers", 0, "Parallel classification workers (overrides config)")

	return cmd
}

// ClassifyCommand streams rows through the relay classifier, appending a
// boolean relay label to each row.
type ClassifyCommand struct {
	fs *flag.FlagSet

	inputPath  string
	outputPath string
	rangesPath string
	workers    int

	cfg *config.Config
}

func (g *ClassifyCommand) Name() string {
	return g.fs.Name()
}

func (g *ClassifyCommand) Init(args []string, ctx *AppContext) error {
	if err := g.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(ctx, g.rangesPath)
	if err != nil {
		return err
	}
	g.cfg = cfg

	if g.rangesPath == "" {
		g.rangesPath = cfg.GetAbsRangesFilePath()
	}
	if g.workers > 0 {
		g.cfg.Classify.Workers = g.workers
	}

	return nil
}

func (g *ClassifyCommand) Run() error {
	// The index must be complete before any row is classified; a load
	// failure aborts here, never mid-stream.
	idx, err := ranges.LoadIndexFromFile(g.rangesPath)
	if err != nil {
		return err
	}

	rowLabeler, err := labeler.New(relay.NewClassifier(idx), g.cfg.Classify)
	if err != nil {
		return err
	}

	input := io.Reader(os.Stdin)
	if g.inputPath != "-" {
		file, err := os.Open(g.inputPath)
		if err != nil {
			return fmt.Errorf("failed to open input file: %v", err)
		}
		defer utils.CloseOrWarn(file)
		input = file
	}

	output := io.Writer(os.Stdout)
	if g.outputPath != "-" {
		file, err := os.Create(g.outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %v", err)
		}
		defer utils.CloseOrWarn(file)
		output = file
	} else {
		// Stdout carries data; keep logs away from it.
		log.ForceStdErr()
	}

	relayRows, totalRows, err := rowLabeler.Run(input, output)
	if err != nil {
		return err
	}

	log.Infof("Classified %d rows (%d relay) using %d workers",
		totalRows, relayRows, g.cfg.Classify.Workers)
	return nil
}

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/noders-team/xptools/internal/analysis"
	"github.com/noders-team/xptools/internal/composition"
	"github.com/noders-team/xptools/internal/report"
	"github.com/noders-team/xptools/pkg/config"
	"github.com/noders-team/xptools/pkg/console"
	"github.com/noders-team/xptools/pkg/fsutil"
	"github.com/noders-team/xptools/pkg/logging"
)

func newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze Crossplane manifests",
	}
	analyzeCmd.AddCommand(newCompositionsCmd())
	return analyzeCmd
}

func newCompositionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compositions <folder>",
		Short: "Extract managed resource usage from Crossplane Compositions",
		Long: `Recursively scans a folder for Composition manifests and reports which
Crossplane and Upbound managed resources they compose, including resources
rendered by function-go-templating, and which composition functions they call.`,
		Example: `  xptools analyze compositions ./apis
  xptools analyze compositions ./apis -o report.json
  xptools analyze compositions ./apis --format markdown -o report.md -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cfgFile)
			if err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runCompositions(cmd, args[0], cfg)
		},
	}

	cmd.Flags().BoolP(config.KeyVerbose, "v", false, "enable verbose output")
	cmd.Flags().StringP(config.KeyOutput, "o", config.DefaultOutput, "path to the output file")
	cmd.Flags().String(config.KeyFormat, config.FormatAuto, "output format: "+strings.Join(config.Formats, ", "))
	cmd.Flags().Int(config.KeyWorkers, runtime.NumCPU(), "number of files parsed concurrently")
	cmd.Flags().String(config.KeyLogFile, config.DefaultLogFile, "log file; empty logs to stderr")

	return cmd
}

func runCompositions(cmd *cobra.Command, folder string, cfg *config.Config) error {
	if err := fsutil.EnsureDir(folder); err != nil {
		return err
	}

	logCfg := logging.Config{Verbose: cfg.Verbose, File: cfg.LogFile}
	if cfg.LogFile == "" {
		logCfg.Console = os.Stderr
	}
	if err := logging.Configure(logCfg); err != nil {
		return err
	}
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}()

	con := console.New(cmd.OutOrStdout())
	log.Info().Msgf("starting composition extraction in %s", folder)

	var bar *console.Progress
	res, err := composition.NewScanner(cfg.Workers).Scan(cmd.Context(), folder, func(done, total int, _ string) {
		if bar == nil {
			bar = con.NewProgress("Extracting Compositions...", total)
		}
		bar.Set(done)
	})
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		log.Error().Err(err).Msg("error during extraction")
		return err
	}

	if len(res.Failed) > 0 {
		con.Warn("%d of %d files could not be parsed", len(res.Failed), res.Files)
	}

	rep := analysis.Summarize(res)
	if rep.Empty() {
		log.Warn().Msg("no Composition entries found")
		con.Warn("No Composition entries found")
		return nil
	}
	log.Info().Msgf("extracted %d entries", len(rep.Rows))
	con.Success("Extracted %d entries", len(rep.Rows))

	if err := report.Write(cfg.Output, cfg.Format, rep); err != nil {
		log.Error().Err(err).Msg("error during export")
		return err
	}
	con.Success("Results saved to %s", cfg.Output)
	return nil
}

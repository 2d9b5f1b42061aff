package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/morikuni/failure/v2"
	"github.com/nao1215/snapdiff/internal/cli"
	"github.com/nao1215/snapdiff/internal/config"
	"github.com/nao1215/snapdiff/internal/log"
	"github.com/nao1215/snapdiff/internal/snapshot"
	"github.com/nao1215/snapdiff/internal/version"
	"github.com/spf13/cobra"
)

// run executes html2md with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if failure.Is(err, cli.ErrUsage) {
			fmt.Fprint(stderr, cmd.UsageString())
			return 1
		}
		cli.PrintError(stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd creates the root command for html2md.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html2md <csv_file> <output_dir>",
		Short: "Convert wiki pages listed in a CSV file into a snapshot archive",
		Long: `html2md fetches every page listed in csv_file, converts its main content
to Markdown and writes all pages into a new archive in output_dir named
YYYY-MM-DD_HH-MM-SS.tar.gz.

The CSV file uses "|" as delimiter and has the columns title|url|date.
Lines starting with "#" are comments. URLs may use http, https or file.

Examples:
  # Take a snapshot of the pages listed in pages.csv
  html2md pages.csv ./snapshots

  # Fetch more pages at once with a longer timeout
  html2md pages.csv ./snapshots --concurrency 8 --timeout 1m`,
		Args:          exactArgs,
		RunE:          runConvertCmd,
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .snapdiff in current or home directory)")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency, "Number of pages processed at once")
	cmd.Flags().Duration("timeout", config.DefaultTimeout, "Timeout for a single page fetch")
	cmd.Flags().String("user-agent", config.DefaultUserAgent, "User-Agent header sent with HTTP requests")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize, "Maximum response body size in bytes")

	return cmd
}

// exactArgs requires csv_file and output_dir.
func exactArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return failure.New(cli.ErrUsage,
			failure.Message("csv_file and output_dir are required"),
			failure.Context{"args": strconv.Itoa(len(args))},
		)
	}
	return nil
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[1])
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return convert(ctx, cmd, cfg, args[0], logger)
}

// buildConfig creates a Config from the output directory, the config file and flags.
func buildConfig(cmd *cobra.Command, outputDir string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ArchiveDir = outputDir

	var err error
	flags := cmd.Flags()
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
		return nil, err
	}

	if err := cli.LoadConfig(cfg, flags.Changed); err != nil {
		return nil, err
	}
	if err := cli.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// convert runs the snapshot producer configured by cfg.
func convert(ctx context.Context, cmd *cobra.Command, cfg *config.Config, csvPath string, logger *slog.Logger) error {
	fetcher := snapshot.NewFetcher(
		snapshot.WithUserAgent(cfg.UserAgent),
		snapshot.WithTimeout(cfg.Timeout),
		snapshot.WithMaxBodySize(cfg.EffectiveMaxBodySize()),
		snapshot.WithFetcherLogger(logger),
	)

	producer := snapshot.New(
		snapshot.WithFetcher(fetcher),
		snapshot.WithConcurrency(cfg.Concurrency),
		snapshot.WithLogger(logger),
		snapshot.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	ref, err := producer.Run(ctx, csvPath, cfg.ArchiveDir)
	if err != nil {
		return err
	}
	logger.Debug("snapshot written", "archive", ref.Name())
	return nil
}

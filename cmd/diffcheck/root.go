package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/nao1215/snapdiff/internal/archive"
	"github.com/nao1215/snapdiff/internal/cli"
	"github.com/nao1215/snapdiff/internal/config"
	"github.com/nao1215/snapdiff/internal/diff"
	"github.com/nao1215/snapdiff/internal/log"
	"github.com/nao1215/snapdiff/internal/model"
	"github.com/nao1215/snapdiff/internal/report"
	"github.com/nao1215/snapdiff/internal/version"
	"github.com/spf13/cobra"
)

// run executes diffcheck with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if failure.Is(err, cli.ErrUsage) {
			fmt.Fprint(stdout, cmd.UsageString())
			return 1
		}
		cli.PrintError(stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd creates the root command for diffcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diffcheck <N_days> <output_dir>",
		Short: "Report pages that changed between two snapshot archives",
		Long: `diffcheck compares two snapshot archives in output_dir and reports the
pages that were modified, added or removed.

The newest archive is compared with the newest archive that is at least
N_days older. Archives are named YYYY-MM-DD_HH-MM-SS.tar.gz and contain
markdown files such as the ones written by html2md.

Examples:
  # Compare the latest snapshot with one from at least a week before
  diffcheck 7 ./snapshots

  # Compare the two newest snapshots and show line diffs
  diffcheck 0 ./snapshots --diff

  # Print a Markdown report and keep a copy in a file
  diffcheck 30 ./snapshots --markdown -o reports/monthly.md`,
		Args:          exactArgs,
		RunE:          runDiffCmd,
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(negativeDays)

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .snapdiff in current or home directory)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report")
	cmd.Flags().Bool("toon", false, "Output TOON report")
	cmd.Flags().BoolP("diff", "d", false, "Show line diffs for modified pages")
	cmd.Flags().Int("context", config.DefaultContextLines,
		"Unchanged lines shown around each change (-1 for all)")
	cmd.Flags().BoolP("all", "a", false, "Also list unchanged pages in the text report")
	cmd.Flags().StringP("output", "o", "",
		"Also write report to specified file path (creates directories if needed)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// exactArgs requires N_days and output_dir.
func exactArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return failure.New(cli.ErrUsage,
			failure.Message("N_days and output_dir are required"),
			failure.Context{"args": strconv.Itoa(len(args))},
		)
	}
	return nil
}

// negativeDays reports a negative N_days, which the flag parser takes for
// an unknown shorthand flag such as "-1", as an argument error.
func negativeDays(_ *cobra.Command, err error) error {
	_, arg, found := strings.Cut(err.Error(), " in ")
	if !found {
		return err
	}
	if n, convErr := strconv.Atoi(arg); convErr == nil && n < 0 {
		return failure.New(cli.ErrInvalidArgument,
			failure.Message("N_days must be a non-negative integer, got "+strconv.Quote(arg)),
		)
	}
	return err
}

// options holds the flags that do not live in config.Config.
type options struct {
	showUnchanged bool
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	r, err := compare(cfg, logger)
	if err != nil {
		return err
	}
	return outputReport(cmd, cfg, opts, r)
}

// buildConfig creates a Config from the arguments, the config file and flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, options, error) {
	cfg := config.NewConfig()
	var opts options

	days, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, opts, failure.New(cli.ErrInvalidArgument,
			failure.Message("N_days must be an integer, got "+strconv.Quote(args[0])),
		)
	}
	cfg.Days = days
	cfg.ArchiveDir = args[1]

	flags := cmd.Flags()
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, opts, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, opts, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, opts, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, opts, err
	}
	if cfg.ToonReport, err = flags.GetBool("toon"); err != nil {
		return nil, opts, err
	}
	if cfg.ShowDiff, err = flags.GetBool("diff"); err != nil {
		return nil, opts, err
	}
	if cfg.ContextLines, err = flags.GetInt("context"); err != nil {
		return nil, opts, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, opts, err
	}
	if opts.showUnchanged, err = flags.GetBool("all"); err != nil {
		return nil, opts, err
	}

	if err := cli.LoadConfig(cfg, flags.Changed); err != nil {
		return nil, opts, err
	}
	if err := cli.Validate(cfg); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

// compare locates, extracts and classifies the two archives.
func compare(cfg *config.Config, logger *slog.Logger) (*model.Report, error) {
	current, baseline, err := archive.Locate(cfg.ArchiveDir, cfg.Days)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected archives",
		"current", current.Name(),
		"baseline", baseline.Name(),
		"days", cfg.Days,
	)

	currentFiles, err := archive.Extract(current)
	if err != nil {
		return nil, err
	}
	baselineFiles, err := archive.Extract(baseline)
	if err != nil {
		return nil, err
	}

	var diffOpts []diff.Option
	if cfg.ShowDiff {
		diffOpts = append(diffOpts, diff.WithLineDiff(cfg.ContextLines))
	}

	r := diff.Classify(baselineFiles, currentFiles, diffOpts...)
	r.Baseline = model.Snapshot{Name: baseline.Name(), Timestamp: baseline.Timestamp}
	r.Current = model.Snapshot{Name: current.Name(), Timestamp: current.Timestamp}
	r.Days = cfg.Days

	logger.Debug("comparison complete",
		"modified", r.Summary.Modified,
		"added", r.Summary.Added,
		"removed", r.Summary.Removed,
		"unchanged", r.Summary.Unchanged,
	)
	return r, nil
}

// outputReport writes r in the configured format to stdout, and also to
// the report file when one is set.
func outputReport(cmd *cobra.Command, cfg *config.Config, opts options, r *model.Report) (err error) {
	w := newWriter(cfg, opts, cmd.OutOrStdout())

	if cfg.ReportFile != "" {
		out, closeOutput, openErr := cli.OpenOutput(cfg.ReportFile, cmd.OutOrStdout())
		if openErr != nil {
			return openErr
		}
		defer func() {
			if cerr := closeOutput(); cerr != nil && err == nil {
				err = failure.Wrap(cerr, failure.WithCode(cli.ErrOutput), failure.Message("failed to close report file"))
			}
		}()
		w = report.NewMultiWriter(w, newWriter(cfg, opts, out))
	}

	if report.Render(w, r) != report.ExitOK {
		return failure.New(cli.ErrOutput, failure.Message("failed to write report"))
	}
	return nil
}

// newWriter returns the report writer for the configured format.
func newWriter(cfg *config.Config, opts options, out io.Writer) report.Writer {
	switch cfg.Format() {
	case config.FormatJSON:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(out)
	case config.FormatToon:
		return report.NewToonWriter(out)
	default:
		return report.NewSimpleWriter(out,
			report.WithVerbose(cfg.Verbose),
			report.WithShowUnchanged(opts.showUnchanged),
		)
	}
}

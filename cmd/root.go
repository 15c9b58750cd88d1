package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"photopti/internal/options"
	"photopti/internal/processor"
	"photopti/internal/tui"
	"photopti/pkg/logging"
)

// Version is overridden at build time.
var Version = "1.0.0"

// errRunFailed marks a run whose per-file errors were already reported.
var errRunFailed = errors.New("one or more images failed to process")

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// runError is a failure after the arguments were accepted.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

type rootFlags struct {
	width      int
	percentage float64
	quality    int
	output     string
	file       string
	name       string
	verbose    bool
	dryRun     bool
	rename     string
	debug      bool
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "photopti",
		Short: "PhotOpti - resize and optimize images for the web",
		Long: `PhotOpti resizes every supported image in the current directory (or a single
file) and re-encodes it as JPEG into an output folder.

Supported inputs: png, jpg, jpeg, webp, gif, tiff, bmp, avif.`,
		Example: `  photopti --width 1200 --quality 85
  photopti --percentage 50 --rename holiday
  photopti --file hero.png --name banner`,
		Args:          cobra.NoArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, stdout, stderr, flags)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	f := root.Flags()
	f.IntVarP(&flags.width, "width", "w", options.DefaultBatchWidth, "resize to a width in pixels (single-file default: 1600)")
	f.Float64VarP(&flags.percentage, "percentage", "p", 0, "resize by percentage of the original width")
	f.IntVarP(&flags.quality, "quality", "q", options.DefaultQuality, "JPEG quality (1-100)")
	f.StringVarP(&flags.output, "output", "o", options.DefaultOutputDir, "output directory name")
	f.StringVarP(&flags.file, "file", "f", "", "process a single image file (writes a reformatted copy)")
	f.StringVar(&flags.name, "name", "", "output base name for single-file mode (no extension)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "show detailed processing information")
	f.BoolVar(&flags.dryRun, "dry-run", false, "preview files that would be processed")
	f.StringVarP(&flags.rename, "rename", "r", "", `rename outputs with sequential numbering ("photo" gives photo-001.jpg, photo-002.jpg, ...)`)
	f.BoolVar(&flags.debug, "debug", false, "emit structured debug logs on stderr")
	root.MarkFlagsMutuallyExclusive("width", "percentage")

	root.AddCommand(newVersionCmd(stdout))
	return root
}

func runOptimize(cmd *cobra.Command, stdout, stderr io.Writer, flags *rootFlags) error {
	cfg, err := options.Resolve(rawFlags(cmd.Flags(), flags))
	if err != nil {
		return &usageError{err: err}
	}

	logger, err := logging.New(flags.debug, "photopti", Version)
	if err != nil {
		return &runError{err: fmt.Errorf("initialize logger: %w", err)}
	}
	defer func() { _ = logger.Sync() }()

	fmt.Fprintln(stdout, tui.TitleStyle.Render("🖼️  PhotOpti - Image Optimizer"))
	fmt.Fprintln(stdout, tui.DimStyle.Render("Resize and optimize images for the web")+"\n")
	if cfg.Verbose {
		printConfig(stdout, cfg)
	}

	env := processor.Env{Out: stdout, Err: stderr, Logger: logger}
	if isTerminal(stdout) {
		env.Progress = tui.NewProgress(stdout)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := processor.New(cfg, env).Run(ctx)
	logger.Debug("run finished",
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors),
		zap.Int("skipped", result.Skipped),
	)
	if result.Failed() {
		return errRunFailed
	}
	return nil
}

func rawFlags(fs *pflag.FlagSet, flags *rootFlags) options.Flags {
	return options.Flags{
		Width:         flags.width,
		WidthSet:      fs.Changed("width"),
		Percentage:    flags.percentage,
		PercentageSet: fs.Changed("percentage"),
		Quality:       flags.quality,
		Output:        flags.output,
		OutputSet:     fs.Changed("output"),
		File:          flags.file,
		Name:          flags.name,
		Verbose:       flags.verbose,
		DryRun:        flags.dryRun,
		Rename:        flags.rename,
	}
}

func printConfig(w io.Writer, cfg options.Config) {
	lines := []string{"Configuration:"}
	if cfg.UsesPercentage() {
		lines = append(lines, fmt.Sprintf("  Resize: %g%% of original", cfg.Percentage))
	} else {
		lines = append(lines, fmt.Sprintf("  Resize: %dpx width", cfg.Width))
	}
	lines = append(lines, fmt.Sprintf("  Quality: %d%%", cfg.Quality))
	lines = append(lines, fmt.Sprintf("  Output: %s/", cfg.OutputDirectory))
	if cfg.Renaming() {
		lines = append(lines, fmt.Sprintf("  Rename: %s-001.jpg, %s-002.jpg, etc.", cfg.RenamePrefix, cfg.RenamePrefix))
	}
	if cfg.SingleFile() {
		lines = append(lines, fmt.Sprintf("  File: %s", cfg.SingleFilePath))
	}
	dry := "No"
	if cfg.DryRun {
		dry = "Yes"
	}
	lines = append(lines, fmt.Sprintf("  Dry run: %s", dry))

	for _, line := range lines {
		fmt.Fprintln(w, tui.DimStyle.Render(line))
	}
	fmt.Fprintln(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ExitCode maps an Execute error to the process exit status: 1 for failed
// runs, 2 for anything rejected before the run started. Cobra's own argument
// and flag-group errors carry no type, so they fall into the usage bucket.
func ExitCode(err error) int {
	var run *runError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errRunFailed), errors.As(err, &run):
		return 1
	default:
		return 2
	}
}

// IsReportedError reports whether err was already printed during the run.
func IsReportedError(err error) bool {
	return errors.Is(err, errRunFailed)
}

func Execute() {
	root := NewRootCmd(os.Stdout, os.Stderr)
	err := root.Execute()
	if err != nil && !IsReportedError(err) {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if ExitCode(err) == 2 {
			fmt.Fprintln(os.Stderr, tui.DimStyle.Render("Run 'photopti --help' for usage."))
		}
	}
	os.Exit(ExitCode(err))
}

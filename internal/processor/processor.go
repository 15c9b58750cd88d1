package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"photopti/internal/options"
	"photopti/internal/tui"
	"photopti/pkg/imgutil"
)

// Env supplies the collaborators a Processor works with. Zero fields fall
// back to the OS filesystem, the working directory, StdCodec, stdout/stderr
// and a no-op logger.
type Env struct {
	Fs       afero.Fs
	Dir      string
	Codec    imgutil.Codec
	Out      io.Writer
	Err      io.Writer
	Logger   *zap.Logger
	Progress *tui.Progress
}

// Processor runs one batch or single-file job. It is not safe for concurrent use.
type Processor struct {
	cfg      options.Config
	fs       afero.Fs
	dir      string
	codec    imgutil.Codec
	out      io.Writer
	errOut   io.Writer
	logger   *zap.Logger
	progress *tui.Progress

	counter   int
	outputDir string
}

func New(cfg options.Config, env Env) *Processor {
	p := &Processor{
		cfg:      cfg,
		fs:       env.Fs,
		dir:      env.Dir,
		codec:    env.Codec,
		out:      env.Out,
		errOut:   env.Err,
		logger:   env.Logger,
		progress: env.Progress,
		counter:  1,
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.dir == "" {
		p.dir = "."
	}
	if p.codec == nil {
		p.codec = imgutil.StdCodec{}
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.errOut == nil {
		p.errOut = os.Stderr
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	return p
}

// Run processes every discovered image, or the configured single file, and
// prints a summary. Per-file failures are counted and never stop the run; a
// fatal error aborts the remaining work and counts as one more error.
func (p *Processor) Run(ctx context.Context) Result {
	var result Result

	var err error
	if p.cfg.SingleFile() {
		err = p.runSingleFile(&result)
	} else {
		var found bool
		found, err = p.runBatch(ctx, &result)
		if err == nil && !found {
			return result
		}
	}

	if err != nil {
		p.logger.Error("run aborted", zap.Error(err))
		p.printErr(tui.ErrorStyle.Render(fmt.Sprintf("Fatal error: %v", err)))
		result.Errors++
	}

	p.printSummary(result)
	return result
}

func (p *Processor) runBatch(ctx context.Context, result *Result) (bool, error) {
	files, err := Discover(p.fs, p.dir)
	if err != nil {
		return false, fmt.Errorf("scan %s: %w", p.dir, err)
	}

	if len(files) == 0 {
		p.println(tui.WarnStyle.Render("No supported image files found in the current directory."))
		return false, nil
	}

	p.println(tui.AccentStyle.Render(fmt.Sprintf("Found %d image file(s) to process...", len(files))))

	if !p.cfg.DryRun {
		if err := p.ensureOutputDir(p.cfg.OutputDirectory); err != nil {
			return true, err
		}
	}

	showProgress := !p.cfg.Verbose && !p.cfg.DryRun
	if showProgress {
		p.progress.Start()
		defer p.progress.Stop()
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return true, err
		}

		if showProgress {
			p.progress.Step(i+1, len(files), file.BaseName)
		}

		dst := filepath.Join(p.cfg.OutputDirectory, p.batchOutputName(file))
		if p.cfg.Verbose && !p.cfg.DryRun {
			p.println(tui.DimStyle.Render(fmt.Sprintf("Processing: %s", file.Path)))
		}

		written, err := p.transform(file.Path, dst)
		if err != nil {
			result.Errors++
			p.logger.Debug("image failed", zap.String("path", file.Path), zap.Error(err))
			p.reportErr(tui.ErrorStyle.Render(fmt.Sprintf("Error processing %s: %v", file.Path, err)))
			continue
		}
		if written {
			result.Processed++
		}
	}

	return true, nil
}

// batchOutputName assigns the output file name. In rename mode the counter
// advances as soon as a name is handed out, so a failed transform still
// consumes its sequence number.
func (p *Processor) batchOutputName(file ImageFile) string {
	if !p.cfg.Renaming() {
		return file.BaseName + ".jpg"
	}
	name := fmt.Sprintf("%s-%03d.jpg", p.cfg.RenamePrefix, p.counter)
	p.counter++
	return name
}

func (p *Processor) runSingleFile(result *Result) error {
	src := p.cfg.SingleFilePath

	info, err := p.fs.Stat(p.resolve(src))
	if err != nil || !info.Mode().IsRegular() {
		p.logger.Debug("single file missing", zap.String("path", src), zap.Error(err))
		p.printErr(tui.ErrorStyle.Render(fmt.Sprintf("File not found: %s", src)))
		result.Errors++
		return nil
	}

	if !imgutil.IsSupportedPath(src) {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(src)))
		p.logger.Debug("single file skipped", zap.String("path", src), zap.Error(err))
		p.println(tui.WarnStyle.Render(fmt.Sprintf("Skipping unsupported file type: %s", src)))
		result.Skipped++
		return nil
	}

	outDir := p.singleFileOutputDir()
	base := p.cfg.SingleFileOutputName
	if base == "" {
		base = newImageFile(filepath.Base(src)).BaseName + "--copy"
	}
	dst := filepath.Join(outDir, base+".jpg")

	if !p.cfg.DryRun {
		if p.cfg.OutputDirectoryExplicit {
			if err := p.ensureOutputDir(outDir); err != nil {
				return err
			}
		}
		if p.cfg.Verbose {
			p.println(tui.DimStyle.Render(fmt.Sprintf("Processing single file: %s", src)))
		}
	}

	written, err := p.transform(src, dst)
	if err != nil {
		result.Errors++
		p.logger.Debug("image failed", zap.String("path", src), zap.Error(err))
		p.printErr(tui.ErrorStyle.Render(fmt.Sprintf("Error processing %s: %v", src, err)))
		return nil
	}
	if written {
		result.Processed++
	}
	return nil
}

// singleFileOutputDir honors an explicit --output, otherwise reuses an
// existing default output folder and falls back to the working directory.
func (p *Processor) singleFileOutputDir() string {
	if p.cfg.OutputDirectoryExplicit {
		return p.cfg.OutputDirectory
	}
	if isDir, _ := afero.IsDir(p.fs, p.resolve(p.cfg.OutputDirectory)); isDir {
		return p.cfg.OutputDirectory
	}
	return "."
}

func (p *Processor) ensureOutputDir(dir string) error {
	if p.outputDir == dir {
		return nil
	}

	path := p.resolve(dir)
	exists, err := afero.DirExists(p.fs, path)
	if err != nil {
		return fmt.Errorf("check output directory %s: %w", dir, err)
	}
	if !exists {
		if err := p.fs.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
		p.logger.Debug("created output directory", zap.String("path", path))
		if p.cfg.Verbose {
			p.println(tui.SuccessStyle.Render(fmt.Sprintf("Created output directory: %s", dir)))
		}
	}

	p.outputDir = dir
	return nil
}

func (p *Processor) printSummary(result Result) {
	p.println(tui.SuccessStyle.Render("\n✓ Processing complete!"))

	rows := []tui.SummaryRow{{Label: "Processed", Value: fmt.Sprintf("%d", result.Processed)}}
	if result.Errors > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Errors", Value: fmt.Sprintf("%d", result.Errors), Style: &tui.ErrorStyle})
	}
	if result.Skipped > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Skipped", Value: fmt.Sprintf("%d", result.Skipped), Style: &tui.WarnStyle})
	}
	p.println(tui.RenderSummary(rows))
}

// resolve maps a path relative to the working directory onto the filesystem.
func (p *Processor) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

func (p *Processor) println(line string) {
	fmt.Fprintln(p.out, line)
}

func (p *Processor) printErr(line string) {
	fmt.Fprintln(p.errOut, line)
}

// reportErr prints above the progress line while it is running.
func (p *Processor) reportErr(line string) {
	if p.progress.Println(line) {
		return
	}
	p.printErr(line)
}

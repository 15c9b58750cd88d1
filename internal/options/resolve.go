package options

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError reports a flag value or combination that cannot produce a Config.
type ValidationError struct {
	Flag    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Flag == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid --%s: %s", e.Flag, e.Message)
}

func invalid(flag, format string, args ...any) *ValidationError {
	return &ValidationError{Flag: flag, Message: fmt.Sprintf(format, args...)}
}

// Resolve validates raw flags and builds the run configuration.
func Resolve(f Flags) (Config, error) {
	if f.WidthSet && f.PercentageSet {
		return Config{}, &ValidationError{Message: "--width and --percentage are mutually exclusive"}
	}
	if f.Quality < 1 || f.Quality > 100 {
		return Config{}, invalid("quality", "must be between 1 and 100, got %d", f.Quality)
	}
	if f.PercentageSet && (math.IsNaN(f.Percentage) || f.Percentage <= 0 || f.Percentage > MaxPercentage) {
		return Config{}, invalid("percentage", "must be greater than 0 and at most %d, got %g", MaxPercentage, f.Percentage)
	}
	if f.WidthSet && f.Width <= 0 {
		return Config{}, invalid("width", "must be greater than 0, got %d", f.Width)
	}

	output := f.Output
	if !f.OutputSet && output == "" {
		output = DefaultOutputDir
	}
	if strings.TrimSpace(output) == "" {
		return Config{}, invalid("output", "must not be empty")
	}

	cfg := Config{
		Quality:                 f.Quality,
		OutputDirectory:         output,
		OutputDirectoryExplicit: f.OutputSet,
		Verbose:                 f.Verbose,
		DryRun:                  f.DryRun,
		SingleFilePath:          f.File,
		SingleFileOutputName:    f.Name,
	}
	if f.File == "" {
		cfg.RenamePrefix = f.Rename
	}

	switch {
	case f.PercentageSet:
		cfg.Percentage = f.Percentage
	case f.WidthSet:
		cfg.Width = f.Width
	case cfg.SingleFile():
		cfg.Width = DefaultSingleFileWidth
	default:
		cfg.Width = DefaultBatchWidth
	}

	return cfg, nil
}

// TargetWidth returns the output width for a source of sourceWidth pixels.
// Percentage results round to the nearest pixel and clamp to at least 1.
func (c Config) TargetWidth(sourceWidth int) int {
	if !c.UsesPercentage() {
		if c.Width < 1 {
			return 1
		}
		return c.Width
	}

	target := int(math.Round(float64(sourceWidth) * c.Percentage / 100))
	if target < 1 {
		return 1
	}
	return target
}

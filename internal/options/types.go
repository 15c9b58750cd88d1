package options

const (
	// DefaultBatchWidth applies when batch mode gets neither --width nor --percentage.
	DefaultBatchWidth = 800
	// DefaultSingleFileWidth applies in single-file mode; hero images take a lighter downscale.
	DefaultSingleFileWidth = 1600

	DefaultQuality   = 80
	DefaultOutputDir = "Opti"

	MaxPercentage = 1000
)

// Flags carries the raw command-line values. The *Set fields record whether
// the user supplied the flag rather than relying on its default.
type Flags struct {
	Width         int
	WidthSet      bool
	Percentage    float64
	PercentageSet bool
	Quality       int
	Output        string
	OutputSet     bool
	File          string
	Name          string
	Verbose       bool
	DryRun        bool
	Rename        string
}

// Config is the validated run configuration. Exactly one of Width and
// Percentage is non-zero.
type Config struct {
	Width                   int
	Percentage              float64
	Quality                 int
	OutputDirectory         string
	OutputDirectoryExplicit bool
	Verbose                 bool
	DryRun                  bool
	RenamePrefix            string
	SingleFilePath          string
	SingleFileOutputName    string
}

func (c Config) UsesPercentage() bool {
	return c.Percentage > 0
}

func (c Config) SingleFile() bool {
	return c.SingleFilePath != ""
}

func (c Config) Renaming() bool {
	return c.RenamePrefix != ""
}

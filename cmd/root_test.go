package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"photopti/internal/options"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWidthAndPercentageAreExclusive(t *testing.T) {
	_, _, err := execute(t, "--width", "640", "--percentage", "50")
	require.Error(t, err)
	require.Contains(t, err.Error(), "none of the others can be")
	require.Equal(t, 2, ExitCode(err))
}

func TestWidthAndPercentageShortFlagsAreExclusive(t *testing.T) {
	_, _, err := execute(t, "-w", "640", "-p", "50", "--dry-run")
	require.ErrorContains(t, err, "[width percentage]")
	require.Equal(t, 2, ExitCode(err))
}

func TestUnexpectedArgumentIsUsageError(t *testing.T) {
	_, _, err := execute(t, "photo.jpg")
	require.Error(t, err)
	require.Equal(t, 2, ExitCode(err))
}

func TestQualityOutOfRangeIsUsageError(t *testing.T) {
	_, _, err := execute(t, "-q", "0")
	require.Error(t, err)

	var verr *options.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "quality", verr.Flag)
	require.Equal(t, 2, ExitCode(err))
}

func TestPercentageOutOfRange(t *testing.T) {
	_, _, err := execute(t, "--percentage", "1500")
	require.ErrorContains(t, err, "--percentage")
	require.Equal(t, 2, ExitCode(err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, _, err := execute(t, "--height", "10")
	require.Error(t, err)
	require.Equal(t, 2, ExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "photopti "+Version)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(errRunFailed))
	require.Equal(t, 1, ExitCode(fmt.Errorf("run: %w", errRunFailed)))
	require.Equal(t, 1, ExitCode(&runError{err: errors.New("initialize logger: boom")}))
	require.Equal(t, 2, ExitCode(errors.New("boom")))
	require.Equal(t, 2, ExitCode(&usageError{err: errors.New("bad flag")}))
	require.True(t, IsReportedError(errRunFailed))
	require.False(t, IsReportedError(errors.New("boom")))
}

func TestRawFlagsTracksExplicitValues(t *testing.T) {
	flags := &rootFlags{}
	root := NewRootCmd(bytes.NewBuffer(nil), bytes.NewBuffer(nil))
	fs := root.Flags()
	require.NoError(t, fs.Parse([]string{"-o", "Opti", "-f", "hero.png"}))

	raw := rawFlags(fs, flags)
	require.True(t, raw.OutputSet)
	require.False(t, raw.WidthSet)
	require.False(t, raw.PercentageSet)
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	printConfig(&buf, options.Config{Percentage: 50, Quality: 80, OutputDirectory: "Opti", RenamePrefix: "trip", DryRun: true})

	out := buf.String()
	require.Contains(t, out, "Resize: 50% of original")
	require.Contains(t, out, "Rename: trip-001.jpg, trip-002.jpg, etc.")
	require.Contains(t, out, "Dry run: Yes")
}

package processor

import (
	"errors"
	"fmt"

	"photopti/pkg/imgutil"
)

// ImageFile is a discovered source image.
type ImageFile struct {
	Path      string
	BaseName  string
	Extension string
}

// Result counts per-file outcomes for one run.
type Result struct {
	Processed int
	Errors    int
	Skipped   int
}

func (r Result) Failed() bool {
	return r.Errors > 0
}

var (
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrOverwriteSource   = errors.New("output would overwrite source")
)

// DimensionReadError means the codec could not report a positive width and height.
type DimensionReadError struct {
	Path string
	Kind imgutil.Kind
	Err  error
}

func (e *DimensionReadError) Error() string {
	msg := fmt.Sprintf("could not read image dimensions of %s", e.Path)
	if e.Kind != imgutil.KindUnknown {
		msg += fmt.Sprintf(" (%s content)", e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DimensionReadError) Unwrap() error {
	return e.Err
}

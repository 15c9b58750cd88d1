package processor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"photopti/internal/tui"
	"photopti/pkg/imgutil"
)

// transform re-encodes src as a JPEG at dst, resizing to the target width when
// it differs from the source. It reports whether a file was written; dry runs
// only print the planned mapping.
func (p *Processor) transform(src, dst string) (bool, error) {
	if p.cfg.DryRun {
		p.println(tui.InfoStyle.Render(fmt.Sprintf("[DRY RUN] Would process: %s → %s", src, dst)))
		return false, nil
	}

	if p.sameFile(src, dst) {
		return false, fmt.Errorf("%w: %s", ErrOverwriteSource, dst)
	}

	file, err := p.fs.Open(p.resolve(src))
	if err != nil {
		return false, err
	}
	defer file.Close()

	kind, _ := imgutil.SniffReader(file)
	if err := rewind(file); err != nil {
		return false, err
	}

	width, height, err := p.codec.Dimensions(file)
	if err != nil || width <= 0 || height <= 0 {
		return false, &DimensionReadError{Path: src, Kind: kind, Err: err}
	}
	if err := rewind(file); err != nil {
		return false, err
	}

	img, err := p.codec.Decode(file)
	if err != nil {
		return false, fmt.Errorf("decode: %w", err)
	}

	target := p.cfg.TargetWidth(width)
	if target != width {
		img = p.codec.Resize(img, target)
	}

	var buf bytes.Buffer
	if err := p.codec.EncodeJPEG(&buf, img, p.cfg.Quality); err != nil {
		return false, fmt.Errorf("encode: %w", err)
	}
	if err := afero.WriteFile(p.fs, p.resolve(dst), buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", dst, err)
	}

	p.logger.Debug("image written",
		zap.String("path", src),
		zap.String("output", dst),
		zap.Stringer("kind", kind),
		zap.Int("source_width", width),
		zap.Int("target_width", target),
		zap.Bool("resized", target != width),
	)

	if p.cfg.Verbose {
		p.reportSizes(file, src, dst, width, height, target, int64(buf.Len()))
	}

	return true, nil
}

func (p *Processor) reportSizes(file afero.File, src, dst string, width, height, target int, newSize int64) {
	var originalSize int64
	if info, err := file.Stat(); err == nil {
		originalSize = info.Size()
	} else {
		p.logger.Warn("stat source", zap.String("path", src), zap.Error(err))
	}

	p.println(tui.SuccessStyle.Render(fmt.Sprintf("  ✓ %s → %s", src, dst)))
	p.println(tui.DimStyle.Render(fmt.Sprintf("    %dx%d → %dpx wide, %.1f%% smaller",
		width, height, target, savingsPercent(originalSize, newSize))))

	groups, err := droppedMetadata(file)
	if err != nil {
		p.logger.Debug("exif scan failed", zap.String("path", src), zap.Error(err))
		return
	}
	if len(groups) > 0 {
		p.println(tui.DimStyle.Render(fmt.Sprintf("    metadata dropped: %s", strings.Join(groups, ", "))))
	}
}

// savingsPercent is the size reduction relative to the original; an empty
// original reports zero.
func savingsPercent(originalSize, newSize int64) float64 {
	if originalSize <= 0 {
		return 0
	}
	return float64(originalSize-newSize) / float64(originalSize) * 100
}

// sameFile reports whether dst names src, either by path or, when dst already
// exists, by file identity (case-insensitive filesystems, links).
func (p *Processor) sameFile(src, dst string) bool {
	srcPath, dstPath := p.resolve(src), p.resolve(dst)
	if absSrc, err := filepath.Abs(srcPath); err == nil {
		if absDst, err := filepath.Abs(dstPath); err == nil && absSrc == absDst {
			return true
		}
	}

	srcInfo, err := p.fs.Stat(srcPath)
	if err != nil {
		return false
	}
	dstInfo, err := p.fs.Stat(dstPath)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, dstInfo)
}

func rewind(rs io.Seeker) error {
	_, err := rs.Seek(0, io.SeekStart)
	return err
}

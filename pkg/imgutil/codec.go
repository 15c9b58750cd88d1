package imgutil

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	_ "github.com/gen2brain/avif"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the source extensions the codec can decode, lowercased with a leading dot.
var SupportedExtensions = []string{
	".png",
	".jpg",
	".jpeg",
	".webp",
	".gif",
	".tiff",
	".bmp",
	".avif",
}

// IsSupportedExtension reports whether ext (any case, leading dot) is a decodable source extension.
func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// IsSupportedPath is IsSupportedExtension applied to the extension of path.
func IsSupportedPath(path string) bool {
	return IsSupportedExtension(filepath.Ext(path))
}

// Codec decodes, resizes and re-encodes images.
type Codec interface {
	Dimensions(r io.Reader) (width, height int, err error)
	Decode(r io.Reader) (image.Image, error)
	Resize(img image.Image, width int) image.Image
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// StdCodec is the Codec backed by the registered image decoders and x/image scaling.
type StdCodec struct {
	// Scaler defaults to draw.CatmullRom.
	Scaler draw.Scaler
}

func (c StdCodec) Dimensions(r io.Reader) (int, int, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func (c StdCodec) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Resize scales img to width pixels, keeping the aspect ratio. Heights round
// to the nearest pixel and never drop below one.
func (c StdCodec) Resize(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width < 1 {
		width = 1
	}
	if width == b.Dx() {
		return img
	}

	height := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}

	scaler := c.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func (c StdCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("jpeg quality %d out of range", quality)
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

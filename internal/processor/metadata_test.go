package processor

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"photopti/internal/options"
)

func TestDroppedMetadataJPEG(t *testing.T) {
	src := filepath.Join(t.TempDir(), "sample.jpg")
	require.NoError(t, os.WriteFile(src, buildJPEGWithExif(), 0o644))

	file, err := os.Open(src)
	require.NoError(t, err)
	defer file.Close()

	groups, err := droppedMetadata(file)
	require.NoError(t, err)
	require.Equal(t, []string{"Device Model", "Timestamp"}, groups)
}

func TestDroppedMetadataRewindsReader(t *testing.T) {
	r := bytes.NewReader(buildJPEGWithExif())
	_, err := r.Seek(4, io.SeekStart)
	require.NoError(t, err)

	groups, err := droppedMetadata(r)
	require.NoError(t, err)
	require.Equal(t, []string{"Device Model", "Timestamp"}, groups)
}

func TestDroppedMetadataWithoutExif(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))

	groups, err := droppedMetadata(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Empty(t, groups)
}

func TestVerboseReportsDroppedMetadata(t *testing.T) {
	h := newHarness(t)

	var encoded bytes.Buffer
	require.NoError(t, jpeg.Encode(&encoded, image.NewRGBA(image.Rect(0, 0, 40, 20)), nil))
	plain := encoded.Bytes()
	segment := exifSegment()
	withExif := append(append(append([]byte{}, plain[:2]...), segment...), plain[2:]...)
	require.NoError(t, os.WriteFile(h.path("tagged.jpg"), withExif, 0o644))

	result := h.run(t, options.Flags{Width: 20, WidthSet: true, Verbose: true})
	require.Equal(t, Result{Processed: 1}, result)
	require.Contains(t, h.out.String(), "metadata dropped: Device Model, Timestamp")

	out, err := os.ReadFile(h.path("Opti", "tagged.jpg"))
	require.NoError(t, err)
	groups, err := droppedMetadata(bytes.NewReader(out))
	require.NoError(t, err)
	require.Empty(t, groups)
}

// exifSegment is a JPEG APP1 segment holding the fixture EXIF block.
func exifSegment() []byte {
	payload := append([]byte("Exif\x00\x00"), buildExifTIFF()...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(payload)+2))
	buf.Write(payload)
	return buf.Bytes()
}

func buildJPEGWithExif() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write(exifSegment())
	buf.Write([]byte{0xff, 0xd9})
	return buf.Bytes()
}

func buildExifTIFF() []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(38))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(20))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(46))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.Write([]byte("TestCam\x00"))
	tiff.Write([]byte("2024:01:02 03:04:05\x00"))
	return tiff.Bytes()
}

package processor

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMatchesSupportedExtensionsAnyCase(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/nested", 0o755))
	require.NoError(t, fsys.MkdirAll("/work/folder.png", 0o755))

	names := []string{
		"a.png", "B.PNG", "c.jpg", "d.JPG", "e.jpeg", "f.Jpeg", "g.webp", "h.GIF",
		"i.tiff", "j.bmp", "k.AVIF", "notes.txt", "noext", "archive.png.zip",
	}
	for _, name := range names {
		require.NoError(t, afero.WriteFile(fsys, "/work/"+name, []byte("x"), 0o644))
	}
	require.NoError(t, afero.WriteFile(fsys, "/work/nested/deep.png", []byte("x"), 0o644))

	files, err := Discover(fsys, "/work")
	require.NoError(t, err)

	var got []string
	for _, f := range files {
		got = append(got, f.Path)
	}
	require.Equal(t, []string{
		"B.PNG", "a.png", "c.jpg", "d.JPG", "e.jpeg", "f.Jpeg", "g.webp", "h.GIF", "i.tiff", "j.bmp", "k.AVIF",
	}, got)
}

func TestDiscoverImageFileFields(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/w/Holiday.Photo.JPEG", []byte("x"), 0o644))

	files, err := Discover(fsys, "/w")
	require.NoError(t, err)
	require.Equal(t, []ImageFile{{Path: "Holiday.Photo.JPEG", BaseName: "Holiday.Photo", Extension: ".jpeg"}}, files)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(afero.NewMemMapFs(), "/missing")
	require.Error(t, err)
}

package processor

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"photopti/pkg/imgutil"
)

// Discover lists supported images directly inside dir, ordered by file name.
// Extensions match case-insensitively and each file appears once.
func Discover(fsys afero.Fs, dir string) ([]ImageFile, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	files := make([]ImageFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		name := entry.Name()
		if !imgutil.IsSupportedPath(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		files = append(files, newImageFile(name))
	}

	return files, nil
}

func newImageFile(path string) ImageFile {
	ext := filepath.Ext(path)
	return ImageFile{
		Path:      path,
		BaseName:  strings.TrimSuffix(filepath.Base(path), ext),
		Extension: strings.ToLower(ext),
	}
}

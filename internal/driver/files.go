package driver

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// ListSourceFiles возвращает отсортированный список файлов с нужными
// расширениями. Hidden directories (the cache lives in .cclex) are skipped.
// Paths use forward slashes, matching source.File.Path.
func ListSourceFiles(dir string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

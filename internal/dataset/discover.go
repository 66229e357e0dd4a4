package dataset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// DiscoverFiles returns the regular files directly inside dir, sorted by
// path. Subdirectories are not descended into.
func DiscoverFiles(dir string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

package driver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every C source below the root.
const DefaultInclude = "**/*.c"

// ListSourceFiles walks dir and returns the files matching any include
// pattern and no exclude pattern, sorted. Patterns use doublestar syntax
// against slash-separated paths relative to dir; an excluded directory is
// not descended into.
func ListSourceFiles(dir string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}
	for _, pattern := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid file pattern %q", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matchesAny(exclude, rel) || matchesAny(exclude, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(include, rel) && !matchesAny(exclude, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if matched, err := doublestar.Match(p, rel); err == nil && matched {
			return true
		}
	}
	return false
}

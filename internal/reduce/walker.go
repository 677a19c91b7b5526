package reduce

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExtensions is the allow-list of source extensions the walker
// considers, absent an explicit override (spec.md, EXTERNAL INTERFACES).
var defaultExtensions = []string{
	"rs", "py", "js", "ts", "java", "c", "cpp", "h", "rb", "go",
}

// defaultSkipDirs are directory names never descended into, regardless
// of ignore-glob configuration — build output and VCS metadata are
// never source to minimize.
var defaultSkipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
}

// WalkOptions configures file discovery.
type WalkOptions struct {
	// Extensions is the allow-list of file extensions (without the
	// leading dot) to include. Empty means defaultExtensions.
	Extensions []string

	// IgnoreGlobs are doublestar patterns (matched against the path
	// relative to root, slash-separated) excluding otherwise-matching
	// files.
	IgnoreGlobs []string
}

// Walk recursively discovers candidate source files under root:
// regular files whose extension is allow-listed, outside the
// always-skipped directories, and not matched by any ignore glob. The
// returned paths are root-relative, slash-separated, and sorted.
func Walk(root string, opts WalkOptions) ([]string, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	allow := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allow[strings.TrimPrefix(ext, ".")] = true
	}

	var paths []string

	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if rel == "." {
			return nil
		}

		base := entry.Name()

		if entry.IsDir() {
			if defaultSkipDirs[base] || strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasPrefix(base, ".") {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(base), ".")
		if !allow[ext] {
			return nil
		}

		relSlash := filepath.ToSlash(rel)

		for _, glob := range opts.IgnoreGlobs {
			matched, matchErr := doublestar.Match(glob, relSlash)
			if matchErr != nil {
				return fmt.Errorf("invalid ignore glob %q: %w", glob, matchErr)
			}

			if matched {
				return nil
			}
		}

		paths = append(paths, relSlash)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(paths)

	return paths, nil
}

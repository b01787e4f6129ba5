package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CollectOptions controls directory walking in CollectFiles.
type CollectOptions struct {
	// IgnorePatterns are glob patterns matched against both the base
	// name and the slash-separated relative path of every entry.
	// Matching directories are skipped entirely.
	IgnorePatterns []string

	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64

	// MaxFiles stops the walk after collecting this many files. Zero
	// means no limit.
	MaxFiles int
}

// CollectedFile is one file found by CollectFiles.
type CollectedFile struct {
	// Path is the absolute path on disk.
	Path string

	// RelPath is the slash-separated path relative to the walk root.
	RelPath string

	// Size is the file size in bytes.
	Size int64
}

// CollectFiles walks root and returns the regular files eligible for
// analysis. Hidden directories like .git are skipped via the ignore
// patterns; oversized files are skipped but reported in the second
// return value so callers can surface them.
func CollectFiles(root string, opts CollectOptions) ([]CollectedFile, []string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat target %s: %w", root, err)
	}

	// A single file target needs no walk.
	if !info.IsDir() {
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			return nil, []string{root}, nil
		}
		return []CollectedFile{{Path: root, RelPath: filepath.Base(root), Size: info.Size()}}, nil, nil
	}

	var collected []CollectedFile
	var skipped []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			skipped = append(skipped, path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(opts.IgnorePatterns, d.Name(), rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			skipped = append(skipped, path)
			return nil
		}
		if opts.MaxFileSize > 0 && fi.Size() > opts.MaxFileSize {
			skipped = append(skipped, path)
			return nil
		}

		collected = append(collected, CollectedFile{Path: path, RelPath: rel, Size: fi.Size()})
		if opts.MaxFiles > 0 && len(collected) >= opts.MaxFiles {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return collected, skipped, nil
}

// MatchesAny reports whether the slash-separated relative path matches
// any of the ignore patterns, using the same semantics as CollectFiles.
func MatchesAny(patterns []string, rel string) bool {
	return matchesAny(patterns, path.Base(rel), rel)
}

// matchesAny reports whether name or relative path matches any pattern.
// Patterns containing a slash match against the relative path; plain
// patterns match the base name. A trailing slash marks directory
// patterns, matched by prefix.
func matchesAny(patterns []string, name, rel string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(p, "/") {
			prefix := strings.TrimSuffix(p, "/")
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		target := name
		if strings.Contains(p, "/") {
			target = rel
		}
		if ok, err := filepath.Match(p, target); err == nil && ok {
			return true
		}
	}
	return false
}

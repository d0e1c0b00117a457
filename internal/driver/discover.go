package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"

	"convdup/internal/trace"
)

// Discover expands roots into the sorted, de-duplicated list of files to
// scan. A root naming a file is always kept. Directories are walked and
// their files filtered through include and exclude, doublestar patterns
// matched against the slash-separated path relative to the root.
func Discover(ctx context.Context, roots, include, exclude []string) ([]string, error) {
	_, span := trace.Start(ctx, trace.ScopePhase, "discover")
	defer span.End("")

	for _, pattern := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}

	var files []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(root))
			continue
		}
		if files, err = walkRoot(ctx, root, include, exclude, files); err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	files = slices.Compact(files)
	span.WithExtra("files", strconv.Itoa(len(files)))
	return files, nil
}

// walkRoot appends the matching files below root to files. An excluded
// directory is not descended into.
func walkRoot(ctx context.Context, root string, include, exclude, files []string) ([]string, error) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		switch {
		case matchAny(exclude, rel) && d.IsDir():
			return filepath.SkipDir
		case matchAny(exclude, rel), d.IsDir():
		case matchAny(include, rel):
			files = append(files, filepath.Clean(path))
		}
		return nil
	})
	return files, err
}

func matchAny(patterns []string, rel string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		return doublestar.MatchUnvalidated(p, rel)
	})
}

package app

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"

	"splc/internal/core/config"
	"splc/internal/shared/util"
)

// ScanSources lists the source files under cfg.Paths that the watcher would
// react to, sorted and without duplicates.
func ScanSources(cfg config.Watch) ([]string, error) {
	dirGlobs, err := compilePatterns(cfg.ExcludeDirs, "exclude dir")
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compilePatterns(cfg.ExcludeFiles, "exclude file")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, root := range scanRoots(cfg.Paths) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path == root {
					return nil
				}
				rel := relPattern(root, path)
				for _, g := range dirGlobs {
					if g.Match(base) || g.Match(rel) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !util.HasExtension(base, cfg.Extensions) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			seen[filepath.Clean(path)] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return util.SortedStringKeys(seen), nil
}

// scanRoots drops duplicate roots and roots nested inside another root, so
// no directory is walked twice.
func scanRoots(paths []string) []string {
	norm := make(map[string]string, len(paths))
	for _, p := range paths {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if _, dup := norm[util.NormalizePatternPath(key)]; !dup {
			norm[util.NormalizePatternPath(key)] = filepath.Clean(p)
		}
	}
	keys := util.SortedStringKeys(norm)

	roots := make([]string, 0, len(keys))
	var kept []string
	for _, key := range keys {
		nested := false
		for _, parent := range kept {
			if util.HasPathPrefix(key, parent) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, key)
			roots = append(roots, norm[key])
		}
	}
	return roots
}

// relPattern is path relative to root in the slash form exclude patterns
// are written in.
func relPattern(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	return util.NormalizePatternPath(rel)
}

func compilePatterns(patterns []string, what string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", what, p, err)
		}
		out = append(out, g)
	}
	return out, nil
}


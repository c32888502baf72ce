package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splc/internal/core/config"
)

func TestScanSources(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "b.spl", "")
	writeSource(t, root, "a.SPL", "")
	writeSource(t, root, "vendor/x.spl", "")
	writeSource(t, root, "deep/nested/c.spl", "")
	writeSource(t, root, "skip.md", "")

	files, err := ScanSources(config.Watch{
		Paths:       []string{root, root},
		Extensions:  []string{".spl"},
		ExcludeDirs: []string{"vendor"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.SPL"),
		filepath.Join(root, "b.spl"),
		filepath.Join(root, "deep", "nested", "c.spl"),
	}, files)

	_, err = ScanSources(config.Watch{Paths: []string{root}, ExcludeDirs: []string{"[bad"}})
	assert.Error(t, err)
}

func TestScanSourcesNestedRootsAndPathPatterns(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "top.spl", "")
	writeSource(t, root, "deep/nested/c.spl", "")
	writeSource(t, root, "deep/keep/d.spl", "")

	files, err := ScanSources(config.Watch{
		Paths:       []string{filepath.Join(root, "deep"), root, root + string(filepath.Separator)},
		Extensions:  []string{".spl"},
		ExcludeDirs: []string{"deep/nested"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "deep", "keep", "d.spl"),
		filepath.Join(root, "top.spl"),
	}, files, "nested root is walked once and path patterns match relative to the root")
}

func TestScanRoots(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	ab := filepath.Join(root, "a", "b")
	sibling := filepath.Join(root, "ab")

	assert.Equal(t, []string{a, sibling}, scanRoots([]string{ab, sibling, a, a}))
}

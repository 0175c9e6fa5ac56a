// Package resolveproject supplies the project-root and module-naming
// ambient plumbing spec.md §3 assumes a caller provides: given a path, find
// the project root it lives under, and derive each source file's dotted
// module name relative to that root (spec.md §3: "derived module name from
// file path and project root").
package resolveproject

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/mod/modfile"

	"github.com/viant/afs"
)

// ErrNoModulePath is returned when root's go.mod exists but declares no
// parseable module path.
var ErrNoModulePath = errors.New("resolveproject: go.mod has no module path")

// Detector locates a project root by walking up from a starting path
// looking for marker files, the same upward-search idiom as the teacher's
// inspector/repository.Detector, trimmed to the markers this engine
// actually has a use for: Go module self-hosting and a generic VCS
// fallback.
type Detector struct {
	fs      afs.Service
	markers []string
}

// NewDetector builds a Detector backed by the local filesystem via afs,
// so a caller can swap in any afs.Service (memory, remote) without
// touching the detection logic.
func NewDetector() *Detector {
	return &Detector{
		fs:      afs.New(),
		markers: []string{"go.mod", ".git"},
	}
}

// Root walks up from startPath looking for a marker file, returning the
// directory containing the first one found. If none is found, startPath
// itself (or its parent directory, if it names a file) is returned.
func (d *Detector) Root(startPath string) (string, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}
	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	start := dir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

var moduleLineRe = regexp.MustCompile(`module\s+([^\s]+)`)

// ModulePath reads root's go.mod via afs and returns its declared module
// path, for engine self-hosting scenarios where rename/refactor run over
// this engine's own Go sources. Falls back to a regex scan if modfile
// fails to parse (a malformed or edited-in-place go.mod).
func (d *Detector) ModulePath(ctx context.Context, root string) (string, error) {
	goModPath := filepath.Join(root, "go.mod")
	content, err := d.fs.DownloadWithURL(ctx, goModPath)
	if err != nil {
		return "", err
	}
	if mod, err := modfile.Parse(goModPath, content, nil); err == nil && mod.Module != nil {
		return mod.Module.Mod.Path, nil
	}
	if m := moduleLineRe.FindSubmatch(content); len(m) == 2 {
		return string(m[1]), nil
	}
	return "", ErrNoModulePath
}

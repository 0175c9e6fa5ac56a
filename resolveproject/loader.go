package resolveproject

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/thisfred/breakfast-sub000/source"
)

// Loader reads a project's source tree through an afs.Service (local disk
// by default, but any afs backend works unmodified), grounded in the
// teacher's analyzer.Analyzer.fs / AnalyzeDir walk.
type Loader struct {
	fs     afs.Service
	parse  source.Parser
	suffix string
}

// NewLoader builds a Loader that reads files ending in suffix (e.g.
// ".py") and parses them with parse. parse may be nil, deferring parsing
// until a caller touches Source.AST, matching source.New's lazy
// contract.
func NewLoader(suffix string, parse source.Parser) *Loader {
	return &Loader{fs: afs.New(), suffix: suffix, parse: parse}
}

// Load walks root and returns one *source.Source per matching file, each
// named with its dotted module path relative to root.
func (l *Loader) Load(ctx context.Context, root string) ([]*source.Source, error) {
	var sources []*source.Source
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), l.suffix) {
			return true, nil
		}
		assetURL := url.Join(baseURL, parent)
		content, err := l.fs.DownloadWithURL(ctx, assetURL)
		if err != nil {
			return false, err
		}
		relPath := strings.TrimPrefix(strings.TrimPrefix(assetURL, root), "/")
		moduleName := DeriveModuleName(relPath, l.suffix)
		sources = append(sources, source.New(assetURL, moduleName, string(content), l.parse))
		return true, nil
	}
	if err := l.fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	return sources, nil
}

// DeriveModuleName implements spec.md §3's module-naming rule: path
// separators become dots, the suffix is dropped, and a file literally
// named "__init__<suffix>" collapses to its directory's module name.
func DeriveModuleName(relPath, suffix string) string {
	relPath = strings.TrimSuffix(relPath, suffix)
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

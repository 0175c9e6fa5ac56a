// Package refactor implements the refactoring planner (spec §4.5): a set
// of functions from a CodeSelection to an ordered list of source.Edit,
// layering free-variable/modified-after analysis, structural-equivalence
// detection, and code-motion on top of the scope graph and occurrence
// packages.
package refactor

import (
	"errors"
	"strings"

	"github.com/thisfred/breakfast-sub000/scopegraph"
	"github.com/thisfred/breakfast-sub000/source"
)

// ErrInvalidSelection is returned when a selection does not satisfy a
// refactoring's contract (e.g. extract-variable given an empty
// selection, inline-call given a selection that isn't a call).
var ErrInvalidSelection = errors.New("refactor: invalid selection")

// CodeSelection is a TextRange plus the project's scope graph, the input
// every refactoring function consumes (spec §4.5).
type CodeSelection struct {
	Range source.TextRange
	Graph *scopegraph.Graph
}

// Options carries the refactoring planner's functional options (spec's
// ambient-stack configuration idiom, mirroring the teacher's
// analyzer.Option/WithLanguage pattern).
type Options struct {
	indent string
}

// Option configures a refactoring call.
type Option func(*Options)

// WithIndent overrides the indentation unit used when re-indenting moved
// or inserted statements. Defaults to four spaces.
func WithIndent(unit string) Option {
	return func(o *Options) { o.indent = unit }
}

func newOptions(opts ...Option) Options {
	o := Options{indent: "    "}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// lineIndent returns the leading whitespace of src's line row.
func lineIndent(src *source.Source, row int) string {
	line := src.Line(row)
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// startOfLine returns the zero-width position at column 0 of row.
func startOfLine(src *source.Source, row int) (source.Position, error) {
	return src.Position(row, 0)
}

// endOfLine returns the position just past the last rune of row.
func endOfLine(src *source.Source, row int) (source.Position, error) {
	return src.Position(row, len([]rune(src.Line(row))))
}

func zeroWidth(p source.Position) source.TextRange {
	return source.TextRange{Start: p, End: p}
}

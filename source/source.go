package source

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/thisfred/breakfast-sub000/ast"
)

var ordinalSeq int64

// Parser turns source text into an AST conforming to the §6 contract.
// This module does not ship a concrete implementation: a front-end
// (out of scope) supplies one, or a test constructs the AST directly
// with NewWithAST.
type Parser func(text string) (ast.Node, error)

// Source holds an immutable line array plus a lazily parsed AST.
type Source struct {
	ordinal    int64
	path       string
	moduleName string
	text       string
	lines      []string

	parse Parser

	once    sync.Once
	astRoot ast.Node
	astErr  error
}

// New builds a Source whose AST is parsed on first use via parse.
func New(path, moduleName, text string, parse Parser) *Source {
	return &Source{
		ordinal:    atomic.AddInt64(&ordinalSeq, 1),
		path:       path,
		moduleName: moduleName,
		text:       text,
		lines:      splitLines(text),
		parse:      parse,
	}
}

// NewWithAST builds a Source around an already-parsed AST, the shape used
// throughout this module's own tests since no concrete parser ships here.
func NewWithAST(path, moduleName, text string, root ast.Node) *Source {
	s := New(path, moduleName, text, nil)
	s.once.Do(func() {}) // mark as already "parsed"
	s.astRoot = root
	return s
}

func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// Path returns the file path this source was loaded from.
func (s *Source) Path() string { return s.path }

// ModuleName returns the dotted module name for this source.
func (s *Source) ModuleName() string { return s.moduleName }

// Text returns the full source text.
func (s *Source) Text() string { return s.text }

// Lines returns the immutable line array (no trailing newline per entry).
func (s *Source) Lines() []string { return s.lines }

// Line returns line row (0-based), or "" if out of range.
func (s *Source) Line(row int) string {
	if row < 0 || row >= len(s.lines) {
		return ""
	}
	return s.lines[row]
}

// AST returns the cached parsed AST, parsing lazily on first call.
func (s *Source) AST() (ast.Node, error) {
	s.once.Do(func() {
		if s.parse != nil {
			s.astRoot, s.astErr = s.parse(s.text)
		}
	})
	return s.astRoot, s.astErr
}

// Position builds a validated Position against this source.
func (s *Source) Position(row, column int) (Position, error) {
	return NewPosition(s, row, column)
}

var identRe = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*`)

// GetNameAt returns the identifier text starting exactly at pos, or "" if
// pos is not the start of a word-like token.
func (s *Source) GetNameAt(pos Position) string {
	line := s.Line(pos.Row())
	runes := []rune(line)
	if pos.Column() < 0 || pos.Column() > len(runes) {
		return ""
	}
	if col := pos.Column(); col > 0 {
		if prev := runes[col-1]; prev == '_' || unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			return ""
		}
	}
	rest := string(runes[pos.Column():])
	return identRe.FindString(rest)
}

// FindAfter locates the next whole-word occurrence of name at or after
// start, searching forward line by line (wrapping never happens: reaching
// past the last line is a failure). Returns ErrNotFound if none exists.
func (s *Source) FindAfter(name string, start Position) (Position, error) {
	if name == "" {
		return Position{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	wordRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	row := start.Row()
	col := start.Column()
	for row < len(s.lines) {
		runes := []rune(s.lines[row])
		lineBytes := []byte(string(runes))
		_ = lineBytes
		line := s.lines[row]
		lineRunes := []rune(line)
		fromCol := col
		if fromCol < 0 {
			fromCol = 0
		}
		if fromCol <= len(lineRunes) {
			searchIn := string(lineRunes[fromCol:])
			loc := wordRe.FindStringIndex(searchIn)
			if loc != nil {
				// loc is a byte offset into searchIn (ASCII-safe since
				// name is matched as whole runes via \b on word chars);
				// convert to a rune offset for the returned column.
				runeOffset := len([]rune(searchIn[:loc[0]]))
				return s.Position(row, fromCol+runeOffset)
			}
		}
		row++
		col = 0
	}
	return Position{}, fmt.Errorf("%w: %q after %s", ErrNotFound, name, start)
}

// NodePosition translates an AST node's (1-based line, byte column) into a
// (0-based row, Unicode-scalar column) Position. ASCII-only lines use the
// byte column directly; otherwise the first N bytes of the line's UTF-8
// encoding are decoded and their scalar count taken (spec §4.1's column
// translation rule).
func (s *Source) NodePosition(n ast.Node) (Position, error) {
	return s.PosAt(n.Position())
}

// PosAt applies NodePosition's translation rule to a raw ast.Pos, for the
// handful of AST fields (Alias, Arg) that carry a position without being
// full Node values themselves.
func (s *Source) PosAt(p ast.Pos) (Position, error) {
	return s.BytePosition(p.Line-1, p.Col)
}

// BytePosition converts a (0-based row, byte column) pair into a Position
// with a Unicode-scalar column, applying the same translation rule as
// NodePosition.
func (s *Source) BytePosition(row, byteCol int) (Position, error) {
	line := s.Line(row)
	if isASCII(line) {
		return s.Position(row, byteCol)
	}
	if byteCol > len(line) {
		byteCol = len(line)
	}
	scalarCol := utf8.RuneCountInString(line[:byteCol])
	return s.Position(row, scalarCol)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

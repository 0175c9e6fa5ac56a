package refactor

import (
	"strings"
	"unicode"

	"github.com/minio/highwayhash"

	"github.com/thisfred/breakfast-sub000/source"
)

// structuralKey is a fixed 32-byte key for the content hash used to
// compare candidate expression spans, adapted from
// inspector/graph/hash.go's Hash helper in the teacher repo.
var structuralKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// hashSpan content-hashes a normalized rendering of s, letting "extract
// variable" compare candidate spans for structural equivalence in O(n)
// rather than pairwise text diffing.
func hashSpan(s string) (uint64, error) {
	h, err := highwayhash.New64(structuralKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write([]byte(normalizeSpan(s))); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// normalizeSpan collapses runs of whitespace so two spans that differ
// only in incidental spacing still hash equal.
func normalizeSpan(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// findOccurrences returns the rune offsets into text of every
// non-overlapping, word-boundary-respecting occurrence of expr.
func findOccurrences(text, expr string) []int {
	if expr == "" {
		return nil
	}
	runes := []rune(text)
	exprRunes := []rune(expr)
	n, m := len(runes), len(exprRunes)
	var starts []int
	for i := 0; i+m <= n; {
		if string(runes[i:i+m]) == expr {
			leftOK := i == 0 || !isWordRune(runes[i-1]) || !isWordRune(exprRunes[0])
			rightOK := i+m == n || !isWordRune(runes[i+m]) || !isWordRune(exprRunes[m-1])
			if leftOK && rightOK {
				starts = append(starts, i)
				i += m
				continue
			}
		}
		i++
	}
	return starts
}

// offsetToPosition converts a rune offset into text (the text covered by
// base, per source.TextRange.Text's line-joining convention) back into a
// Position relative to base.Start.
func offsetToPosition(src *source.Source, base source.TextRange, offset int) (source.Position, error) {
	row := base.Start.Row()
	col := base.Start.Column()
	remaining := offset
	for {
		lineRunes := []rune(src.Line(row))
		available := len(lineRunes) - col
		if row == base.Start.Row() {
			available = len(lineRunes) - col
		}
		if row == base.End.Row() {
			// Last line of base is truncated at base.End.Column().
			available = base.End.Column() - col
		}
		if remaining <= available {
			return src.Position(row, col+remaining)
		}
		remaining -= available + 1 // +1 for the joining newline
		row++
		col = 0
	}
}

// spanRange returns the TextRange of the occurrence of expr starting at
// rune offset start within base's text.
func spanRange(src *source.Source, base source.TextRange, start int, expr string) (source.TextRange, error) {
	startPos, err := offsetToPosition(src, base, start)
	if err != nil {
		return source.TextRange{}, err
	}
	endPos, err := offsetToPosition(src, base, start+len([]rune(expr)))
	if err != nil {
		return source.TextRange{}, err
	}
	return source.NewTextRange(startPos, endPos)
}

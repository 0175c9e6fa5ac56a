package source

import (
	"fmt"
	"strings"
)

// TextRange is a half-open-by-convention span [Start, End] within a single
// Source; Start must not be after End and both must share a Source.
type TextRange struct {
	Start Position
	End   Position
}

// NewTextRange validates start/end share a source and start <= end.
func NewTextRange(start, end Position) (TextRange, error) {
	if start.Source() != end.Source() {
		return TextRange{}, fmt.Errorf("%w: range spans two sources", ErrIllegalPosition)
	}
	if end.Less(start) {
		return TextRange{}, fmt.Errorf("%w: end before start", ErrIllegalPosition)
	}
	return TextRange{Start: start, End: end}, nil
}

// Source returns the shared source of this range's endpoints.
func (r TextRange) Source() *Source { return r.Start.Source() }

// Text returns the source text covered by r: the concatenation of the
// covered line slices, joined by newline.
func (r TextRange) Text() string {
	src := r.Source()
	if src == nil {
		return ""
	}
	if r.Start.Row() == r.End.Row() {
		line := []rune(src.Line(r.Start.Row()))
		return string(sliceRunes(line, r.Start.Column(), r.End.Column()))
	}
	var b strings.Builder
	first := []rune(src.Line(r.Start.Row()))
	b.WriteString(string(sliceRunes(first, r.Start.Column(), len(first))))
	for row := r.Start.Row() + 1; row < r.End.Row(); row++ {
		b.WriteString("\n")
		b.WriteString(src.Line(row))
	}
	last := []rune(src.Line(r.End.Row()))
	b.WriteString("\n")
	b.WriteString(string(sliceRunes(last, 0, r.End.Column())))
	return b.String()
}

func sliceRunes(runes []rune, from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return nil
	}
	return runes[from:to]
}

// TextWithSubstitutions returns r's text with every edit whose range falls
// entirely within r applied, materializing the substituted text rather
// than the original. Edits are applied in sorted, non-overlapping order
// (the same contract the edit applier enforces at the whole-file level).
func (r TextRange) TextWithSubstitutions(edits []Edit) string {
	within := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if !e.Range.Start.Less(r.Start) && !r.End.Less(e.Range.End) {
			within = append(within, e)
		}
	}
	sortEdits(within)

	var b strings.Builder
	cursor := r.Start
	for _, e := range within {
		b.WriteString(mustRange(cursor, e.Range.Start).Text())
		b.WriteString(e.Text)
		cursor = e.Range.End
	}
	b.WriteString(mustRange(cursor, r.End).Text())
	return b.String()
}

func mustRange(start, end Position) TextRange {
	rng, err := NewTextRange(start, end)
	if err != nil {
		return TextRange{Start: start, End: start}
	}
	return rng
}

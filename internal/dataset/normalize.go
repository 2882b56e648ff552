package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Normalize returns a cleaned copy of t; the input is never modified.
//
// Column names are whitespace-trimmed. Every cell of a recognized numeric
// column is rewritten to its canonical float form, or to the missing marker
// when it does not parse, so downstream folds never see malformed numbers.
// EngagementLevel values are trimmed and title-cased. Absent columns are
// skipped; there are no error conditions. Applying Normalize twice yields
// the same table as applying it once.
func Normalize(t *Table) *Table {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = strings.TrimSpace(c)
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]string(nil), r...)
	}
	out := New(cols, rows)

	for _, name := range NumericColumns {
		j, ok := out.ColumnIndex(name)
		if !ok {
			continue
		}
		for _, row := range out.Rows {
			if v, ok := ParseNumber(row[j]); ok {
				row[j] = strconv.FormatFloat(v, 'f', -1, 64)
			} else {
				row[j] = Missing
			}
		}
	}
	if j, ok := out.ColumnIndex(ColEngagementLevel); ok {
		for _, row := range out.Rows {
			row[j] = TitleCase(strings.TrimSpace(row[j]))
		}
	}
	return out
}

// ParseNumber parses a cell as a float64. It trims surrounding whitespace
// first and rejects NaN and infinities, which count as missing.
func ParseNumber(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// TitleCase upper-cases the first letter of each whitespace-delimited word
// and lower-cases the rest, preserving the whitespace itself. Idempotent:
// TitleCase(TitleCase(s)) == TitleCase(s) for any s.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			b.WriteRune(r)
		case atWordStart:
			b.WriteRune(unicode.ToUpper(r))
			atWordStart = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Package dataset loads player engagement tables from CSV or XLSX files and
// normalizes them for aggregation.
package dataset

// Recognized column names. Presence is checked at computation time; none of
// them is required for a table to be valid.
const (
	ColPlayerID           = "PlayerID"
	ColGameGenre          = "GameGenre"
	ColLocation           = "Location"
	ColEngagementLevel    = "EngagementLevel"
	ColPlayTimeHours      = "PlayTimeHours"
	ColInGamePurchases    = "InGamePurchases"
	ColSessionsPerWeek    = "SessionsPerWeek"
	ColAvgSessionDuration = "AvgSessionDurationMinutes"
	ColPlayerLevel        = "PlayerLevel"
	ColAchievements       = "AchievementsUnlocked"
)

// NumericColumns are the fields Normalize coerces to numbers.
var NumericColumns = []string{
	ColPlayTimeHours,
	ColInGamePurchases,
	ColSessionsPerWeek,
	ColAvgSessionDuration,
	ColPlayerLevel,
	ColAchievements,
}

// Missing is the cell sentinel for "no usable number here". Aggregations skip
// cells that fail ParseNumber, so any unparseable text behaves as missing;
// Normalize rewrites such cells to this marker in numeric columns.
const Missing = ""

// Table is an ordered grid of string cells addressed by column name. Rows are
// always exactly len(Columns) wide. A Table is never mutated after New; the
// normalizer returns fresh copies.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// New builds a Table from a header and rows. Short rows are padded with the
// missing marker and long rows truncated so every row matches the header
// width. The name index is built eagerly so lookups are safe from concurrent
// readers.
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Rows:    make([][]string, len(rows)),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	ncol := len(columns)
	for i, row := range rows {
		fixed := make([]string, ncol)
		copy(fixed, row)
		t.Rows[i] = fixed
	}
	return t
}

// ColumnIndex reports the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.Rows) }

// Cell returns the value at (row, column name), or the missing marker when
// the column does not exist or the row is out of range.
func (t *Table) Cell(row int, name string) string {
	i, ok := t.index[name]
	if !ok || row < 0 || row >= len(t.Rows) {
		return Missing
	}
	return t.Rows[row][i]
}

package analytics

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
)

// aggregation pairs a source column with the fold applied to each partition.
type aggregation struct {
	Column string
	Fn     string
}

// segmentAggregations lists the folds every segment table carries, in output
// order. Purchases contribute both a mean and a sum.
var segmentAggregations = []aggregation{
	{dataset.ColAvgSessionDuration, "mean"},
	{dataset.ColSessionsPerWeek, "mean"},
	{dataset.ColInGamePurchases, "mean"},
	{dataset.ColInGamePurchases, "sum"},
}

// SegmentRow is one partition: its normalized grouping value, the aggregated
// metrics aligned with the table's metric columns, and the partition size.
type SegmentRow struct {
	Value   string
	Metrics []Metric
	Players int
}

// SegmentTable is one grouped view of the dataset. Columns holds the
// grouping key, then the flattened aggregation labels, then num_players.
// When the grouping column is absent the table carries only its Key.
type SegmentTable struct {
	Key     string
	Columns []string
	Rows    []SegmentRow
}

// Empty reports whether the table has no rows to show.
func (s SegmentTable) Empty() bool { return len(s.Rows) == 0 }

func (s SegmentTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.envelope())
}

func (s SegmentTable) MarshalYAML() (interface{}, error) {
	return s.envelope(), nil
}

type segmentEnvelope struct {
	Key     string          `json:"key" yaml:"key"`
	Columns []string        `json:"columns" yaml:"columns"`
	Rows    [][]interface{} `json:"rows" yaml:"rows"`
}

// envelope renders rows as positional cell arrays so column order survives
// serialization; undefined metrics become null.
func (s SegmentTable) envelope() segmentEnvelope {
	env := segmentEnvelope{
		Key:     s.Key,
		Columns: s.Columns,
		Rows:    make([][]interface{}, 0, len(s.Rows)),
	}
	if env.Columns == nil {
		env.Columns = []string{}
	}
	for _, r := range s.Rows {
		cells := make([]interface{}, 0, len(r.Metrics)+2)
		cells = append(cells, r.Value)
		for _, m := range r.Metrics {
			if m.Defined {
				cells = append(cells, m.Value)
			} else {
				cells = append(cells, nil)
			}
		}
		cells = append(cells, r.Players)
		env.Rows = append(env.Rows, cells)
	}
	return env
}

// GroupBy partitions the table by one grouping key and aggregates each
// partition. Key cells are trimmed and title-cased before partitioning, so
// "rpg" and " RPG " land in the same row; an empty cell groups under the
// empty string. An absent grouping column yields a table with only the key
// set. Rows come out sorted descending by the second output column, the
// first column after the grouping key; ties keep first-encounter order.
func GroupBy(t *dataset.Table, key string) SegmentTable {
	out := SegmentTable{Key: key}
	j, ok := t.ColumnIndex(key)
	if !ok {
		return out
	}

	aggs := presentAggregations(t)
	out.Columns = make([]string, 0, len(aggs)+2)
	out.Columns = append(out.Columns, key)
	for _, a := range aggs {
		out.Columns = append(out.Columns, flattenLabel(a.Column, a.Fn))
	}
	out.Columns = append(out.Columns, "num_players")

	type partition struct {
		value string
		rows  []int
	}
	index := map[string]int{}
	var parts []partition
	for i := range t.Rows {
		v := dataset.TitleCase(strings.TrimSpace(t.Rows[i][j]))
		pi, seen := index[v]
		if !seen {
			pi = len(parts)
			index[v] = pi
			parts = append(parts, partition{value: v})
		}
		parts[pi].rows = append(parts[pi].rows, i)
	}

	for _, p := range parts {
		row := SegmentRow{Value: p.value, Players: len(p.rows)}
		for _, a := range aggs {
			row.Metrics = append(row.Metrics, foldColumn(t, p.rows, a))
		}
		out.Rows = append(out.Rows, row)
	}
	sortRows(&out)
	return out
}

// presentAggregations filters the declared folds down to columns the table
// actually has, preserving declared order.
func presentAggregations(t *dataset.Table) []aggregation {
	var out []aggregation
	for _, a := range segmentAggregations {
		if t.HasColumn(a.Column) {
			out = append(out, a)
		}
	}
	return out
}

// foldColumn applies one aggregation over the partition's rows, skipping
// missing cells. A mean with no data is undefined; a sum with no data is a
// defined zero.
func foldColumn(t *dataset.Table, rows []int, a aggregation) Metric {
	col, _ := t.ColumnIndex(a.Column)
	var sum float64
	var n int
	for _, i := range rows {
		if v, ok := dataset.ParseNumber(t.Rows[i][col]); ok {
			sum += v
			n++
		}
	}
	if a.Fn == "sum" {
		return DefinedMetric(sum)
	}
	if n == 0 {
		return Metric{}
	}
	return DefinedMetric(sum / float64(n))
}

// flattenLabel joins the non-empty parts of a composite (column, function)
// label with underscores and strips any leading or trailing separator.
func flattenLabel(column, fn string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{column, fn} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Trim(strings.Join(parts, "_"), "_")
}

// sortRows orders the table descending by whichever column lands second in
// the output, not by a named metric. With no aggregation columns present
// that is num_players. Undefined values sort below any defined value.
func sortRows(s *SegmentTable) {
	if len(s.Columns) < 2 {
		return
	}
	key := func(r SegmentRow) (bool, float64) {
		if len(r.Metrics) > 0 {
			return r.Metrics[0].Defined, r.Metrics[0].Value
		}
		return true, float64(r.Players)
	}
	sort.SliceStable(s.Rows, func(i, j int) bool {
		di, vi := key(s.Rows[i])
		dj, vj := key(s.Rows[j])
		if di != dj {
			return di
		}
		return vi > vj
	})
}

// Segments holds the three grouped views computed from one table.
type Segments struct {
	ByGenre      SegmentTable `json:"by_genre" yaml:"by_genre"`
	ByLocation   SegmentTable `json:"by_location" yaml:"by_location"`
	ByEngagement SegmentTable `json:"by_engagement" yaml:"by_engagement"`
}

// ComputeSegments groups the table by genre, location and engagement tier
// concurrently, one goroutine per grouping key. Each goroutine reads the
// shared table and writes only its own slot, so no locking is needed.
func ComputeSegments(ctx context.Context, t *dataset.Table) (Segments, error) {
	var s Segments
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		s.ByGenre = GroupBy(t, dataset.ColGameGenre)
		return nil
	})
	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		s.ByLocation = GroupBy(t, dataset.ColLocation)
		return nil
	})
	eg.Go(func() error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		s.ByEngagement = GroupBy(t, dataset.ColEngagementLevel)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Segments{}, err
	}
	return s, nil
}

package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

// RenderText renders the human-readable report: headline KPIs, then the top
// rows of each non-empty segment table in post-sort order. top caps the rows
// shown per table; values <= 0 fall back to 5.
func RenderText(r *Report, top int) string {
	if top <= 0 {
		top = 5
	}
	var b strings.Builder
	b.WriteString("[TOP-LEVEL KPIS]\n")
	fmt.Fprintf(&b, "Players: %d\n", r.KPIs.TotalPlayers)
	fmt.Fprintf(&b, "Avg Session Duration (min): %s\n", FormatMetric(r.KPIs.AvgSessionDurationMinutes))
	fmt.Fprintf(&b, "Avg Sessions/Week: %s\n", FormatMetric(r.KPIs.AvgSessionsPerWeek))
	fmt.Fprintf(&b, "Avg Purchases/User: %s\n", FormatMetric(r.KPIs.AvgPurchasesPerUser))
	fmt.Fprintf(&b, "High Engagement Retention: %s\n", FormatPercent(r.KPIs.RetentionRateHighEngagement))

	for _, seg := range []struct {
		name  string
		table SegmentTable
	}{
		{"by_genre", r.Segments.ByGenre},
		{"by_location", r.Segments.ByLocation},
		{"by_engagement", r.Segments.ByEngagement},
	} {
		if seg.table.Empty() {
			continue
		}
		fmt.Fprintf(&b, "\n[SEGMENT: %s]\n", seg.name)
		writeSegmentTable(&b, seg.table, top)
	}
	return b.String()
}

// writeSegmentTable prints the first top rows as a width-aligned table.
func writeSegmentTable(b *strings.Builder, s SegmentTable, top int) {
	shown := s.Rows
	if len(shown) > top {
		shown = shown[:top]
	}
	cells := make([][]string, 0, len(shown)+1)
	cells = append(cells, s.Columns)
	for _, r := range shown {
		row := make([]string, 0, len(s.Columns))
		row = append(row, r.Value)
		for _, m := range r.Metrics {
			row = append(row, formatCell(m))
		}
		row = append(row, strconv.Itoa(r.Players))
		cells = append(cells, row)
	}

	widths := make([]int, len(s.Columns))
	for _, row := range cells {
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}
	for _, row := range cells {
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(c)
			} else {
				fmt.Fprintf(b, "%-*s", widths[i], c)
			}
		}
		b.WriteString("\n")
	}
	if len(s.Rows) > top {
		fmt.Fprintf(b, "(showing %d of %d rows)\n", top, len(s.Rows))
	}
}

// formatCell renders one segment metric for display, rounded to 2 decimals.
// Serialized formats carry the metric at full precision instead.
func formatCell(m Metric) string {
	if !m.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(roundTo(m.Value, 2), 'f', -1, 64)
}

// FormatMetric renders a metric as its literal value with no trailing
// zeros, or the placeholder "undefined".
func FormatMetric(m Metric) string {
	if !m.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// FormatPercent renders a ratio as a percentage with exactly two decimals:
// 0.1234 becomes "12.34%". Non-finite values render as "n/a", never an
// error.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// RenderJSON pretty-prints the full report envelope.
func RenderJSON(r *Report) ([]byte, error) {
	return utils.PrettyJSON(r)
}

// RenderYAML marshals the full report envelope.
func RenderYAML(r *Report) ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

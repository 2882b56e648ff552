package analytics

import (
	"encoding/json"
	"math"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
)

// Metric is a float that may be undefined when no data backs it, e.g. the
// source column is absent or every cell is missing. Undefined metrics
// serialize as null.
type Metric struct {
	Value   float64
	Defined bool
}

// DefinedMetric wraps a computed value.
func DefinedMetric(v float64) Metric { return Metric{Value: v, Defined: true} }

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = DefinedMetric(v)
	return nil
}

func (m Metric) MarshalYAML() (interface{}, error) {
	if !m.Defined {
		return nil, nil
	}
	return m.Value, nil
}

// KPIs is the fixed set of headline metrics computed over a whole dataset.
// Mean metrics follow the undefined-on-no-data rule; the retention rate is a
// ratio and falls back to zero on an empty denominator instead. That
// asymmetry is deliberate and load-bearing for downstream consumers.
type KPIs struct {
	TotalPlayers                int     `json:"total_players" yaml:"total_players"`
	AvgSessionDurationMinutes   Metric  `json:"average_session_duration_minutes" yaml:"average_session_duration_minutes"`
	AvgSessionsPerWeek          Metric  `json:"average_sessions_per_week" yaml:"average_sessions_per_week"`
	AvgPurchasesPerUser         Metric  `json:"average_purchases_per_user" yaml:"average_purchases_per_user"`
	RetentionRateHighEngagement float64 `json:"retention_rate_high_engagement" yaml:"retention_rate_high_engagement"`
}

// ComputeKPIs derives the headline metrics from a normalized table. Means
// are rounded to 2 decimal places, the retention rate to 4. Pure function;
// the table is only read.
func ComputeKPIs(t *dataset.Table) KPIs {
	total := t.NumRows()
	k := KPIs{TotalPlayers: total}

	if v, ok := columnMean(t, dataset.ColAvgSessionDuration); ok {
		k.AvgSessionDurationMinutes = DefinedMetric(roundTo(v, 2))
	}
	if v, ok := columnMean(t, dataset.ColSessionsPerWeek); ok {
		k.AvgSessionsPerWeek = DefinedMetric(roundTo(v, 2))
	}
	if v, ok := columnMean(t, dataset.ColInGamePurchases); ok {
		k.AvgPurchasesPerUser = DefinedMetric(roundTo(v, 2))
	}

	high := 0
	if j, ok := t.ColumnIndex(dataset.ColEngagementLevel); ok {
		for _, row := range t.Rows {
			if row[j] == "High" {
				high++
			}
		}
	}
	k.RetentionRateHighEngagement = roundTo(safeDivide(float64(high), float64(total)), 4)
	return k
}

// columnMean averages the parseable cells of one column. ok is false when
// the column is absent or holds no parseable cell.
func columnMean(t *dataset.Table, name string) (float64, bool) {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return 0, false
	}
	var sum float64
	var n int
	for _, row := range t.Rows {
		if v, ok := dataset.ParseNumber(row[j]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Package analytics computes player-engagement KPIs and segment tables from
// a normalized dataset table and renders them as text, JSON or YAML.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
)

// Report is the full analysis envelope for one dataset.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Source      string    `json:"source" yaml:"source"`
	Rows        int       `json:"rows" yaml:"rows"`
	KPIs        KPIs      `json:"kpis" yaml:"kpis"`
	Segments    Segments  `json:"segments" yaml:"segments"`
}

// BuildReport runs the full pipeline over a raw table: normalize, compute
// KPIs, compute the three segment views. The raw table is never mutated.
func BuildReport(ctx context.Context, source string, raw *dataset.Table) (*Report, error) {
	t := dataset.Normalize(raw)
	segments, err := ComputeSegments(ctx, t)
	if err != nil {
		return nil, err
	}
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Rows:        t.NumRows(),
		KPIs:        ComputeKPIs(t),
		Segments:    segments,
	}, nil
}

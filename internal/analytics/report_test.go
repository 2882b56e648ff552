package analytics

import (
	"context"
	"reflect"
	"testing"
)

func TestBuildReport(t *testing.T) {
	raw := playersFixture()

	r, err := BuildReport(context.Background(), "players.csv", raw)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	if r.ID == "" {
		t.Error("report id not set")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("generation timestamp not set")
	}
	if r.Source != "players.csv" {
		t.Errorf("source = %q", r.Source)
	}
	if r.Rows != 4 {
		t.Errorf("rows = %d, want 4", r.Rows)
	}
	if r.KPIs.TotalPlayers != 4 {
		t.Errorf("total players = %d, want 4", r.KPIs.TotalPlayers)
	}
	if len(r.Segments.ByGenre.Rows) != 3 {
		t.Errorf("by_genre rows = %d, want 3", len(r.Segments.ByGenre.Rows))
	}

	// The raw table must survive untouched.
	if raw.Cell(0, "EngagementLevel") != "high" {
		t.Error("BuildReport mutated its input")
	}
	if raw.Cell(1, "AvgSessionDurationMinutes") != "bad" {
		t.Error("BuildReport coerced cells in its input")
	}
}

func TestBuildReportDeterministic(t *testing.T) {
	raw := playersFixture()

	first, err := BuildReport(context.Background(), "players.csv", raw)
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildReport(context.Background(), "players.csv", raw)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.KPIs, second.KPIs) {
		t.Fatalf("KPIs differ between runs:\n%+v\n%+v", first.KPIs, second.KPIs)
	}
	if !reflect.DeepEqual(first.Segments, second.Segments) {
		t.Fatalf("segments differ between runs:\n%+v\n%+v", first.Segments, second.Segments)
	}
	if first.ID == second.ID {
		t.Error("report ids should be unique per run")
	}
}

func TestBuildReportCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := BuildReport(ctx, "players.csv", playersFixture()); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

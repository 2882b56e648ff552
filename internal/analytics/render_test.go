package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
)

func buildFixtureReport(t *testing.T) *Report {
	t.Helper()
	r, err := BuildReport(context.Background(), "players.csv", playersFixture())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	return r
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0.1234, "12.34%"},
		{0.5, "50.00%"},
		{0, "0.00%"},
		{1, "100.00%"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.v); got != c.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestFormatMetric(t *testing.T) {
	cases := []struct {
		m    Metric
		want string
	}{
		{DefinedMetric(0.5), "0.5"},
		{DefinedMetric(20), "20"},
		{DefinedMetric(13.33), "13.33"},
		{Metric{}, "undefined"},
	}
	for _, c := range cases {
		if got := FormatMetric(c.m); got != c.want {
			t.Errorf("FormatMetric(%+v) = %q, want %q", c.m, got, c.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	out := RenderText(buildFixtureReport(t), 5)

	for _, want := range []string{
		"[TOP-LEVEL KPIS]",
		"Players: 4",
		"Avg Session Duration (min): 20",
		"Avg Sessions/Week: 5",
		"Avg Purchases/User: 13.33",
		"High Engagement Retention: 50.00%",
		"[SEGMENT: by_genre]",
		"[SEGMENT: by_location]",
		"[SEGMENT: by_engagement]",
		"num_players",
		"Sports",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextSkipsEmptySegments(t *testing.T) {
	tbl := dataset.New(
		[]string{"GameGenre", "SessionsPerWeek"},
		[][]string{{"RPG", "3"}},
	)
	r, err := BuildReport(context.Background(), "t.csv", tbl)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderText(r, 5)

	if !strings.Contains(out, "[SEGMENT: by_genre]") {
		t.Errorf("by_genre section missing:\n%s", out)
	}
	if strings.Contains(out, "[SEGMENT: by_location]") {
		t.Errorf("empty by_location section should be skipped:\n%s", out)
	}
	if strings.Contains(out, "[SEGMENT: by_engagement]") {
		t.Errorf("empty by_engagement section should be skipped:\n%s", out)
	}
}

func TestRenderTextUndefinedKPI(t *testing.T) {
	tbl := dataset.New(
		[]string{"GameGenre", "AvgSessionDurationMinutes"},
		[][]string{{"RPG", "10"}},
	)
	r, err := BuildReport(context.Background(), "t.csv", tbl)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderText(r, 5)

	if !strings.Contains(out, "Avg Sessions/Week: undefined") {
		t.Errorf("undefined placeholder missing:\n%s", out)
	}
}

func TestRenderTextTruncatesRows(t *testing.T) {
	rows := make([][]string, 0, 6)
	for i := 0; i < 6; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("Genre%d", i),
			fmt.Sprintf("%d", 60-10*i),
		})
	}
	tbl := dataset.New([]string{"GameGenre", "AvgSessionDurationMinutes"}, rows)
	r, err := BuildReport(context.Background(), "t.csv", tbl)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderText(r, 5)

	if !strings.Contains(out, "(showing 5 of 6 rows)") {
		t.Errorf("truncation note missing:\n%s", out)
	}
	if !strings.Contains(out, "Genre0") {
		t.Errorf("top row missing:\n%s", out)
	}
	if strings.Contains(out, "Genre5") {
		t.Errorf("row past the cap should not render:\n%s", out)
	}
}

func TestRenderTextRoundsSegmentCells(t *testing.T) {
	tbl := dataset.New(
		[]string{"GameGenre", "AvgSessionDurationMinutes"},
		[][]string{
			{"RPG", "10"},
			{"RPG", "10"},
			{"RPG", "11"},
		},
	)
	r, err := BuildReport(context.Background(), "t.csv", tbl)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderText(r, 5)

	_, tail, found := strings.Cut(out, "[SEGMENT: by_genre]")
	if !found || !strings.Contains(tail, "10.33") {
		t.Errorf("segment cell should display rounded to 2 decimals:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	b, err := RenderJSON(buildFixtureReport(t))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	out := string(b)

	for _, want := range []string{
		`"total_players": 4`,
		`"retention_rate_high_engagement": 0.5`,
		`"by_genre"`,
		`"by_location"`,
		`"by_engagement"`,
		`"num_players"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("json report missing %s:\n%s", want, out)
		}
	}
}

func TestRenderJSONNullForUndefined(t *testing.T) {
	tbl := dataset.New([]string{"GameGenre"}, [][]string{{"RPG"}})
	r, err := BuildReport(context.Background(), "t.csv", tbl)
	if err != nil {
		t.Fatal(err)
	}

	b, err := RenderJSON(r)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(b), `"average_sessions_per_week": null`) {
		t.Errorf("undefined KPI should serialize as null:\n%s", b)
	}
}

func TestRenderYAML(t *testing.T) {
	b, err := RenderYAML(buildFixtureReport(t))
	if err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}
	out := string(b)

	for _, want := range []string{
		"total_players: 4",
		"retention_rate_high_engagement: 0.5",
		"by_genre:",
		"source: players.csv",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml report missing %q:\n%s", want, out)
		}
	}
}

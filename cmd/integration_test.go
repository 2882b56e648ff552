package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags clears bound flag variables that would otherwise leak between
// invocations of the shared root command.
func resetFlags() {
	repData, repFormat, repDelimiter, repOutputPath, repSheetName = "", "", "", "", ""
	repTop, repSheetIndex = 0, 1
	rbFormat, rbDelimiter, rbOutDir, rbSheetName = "", "", "", ""
	rbTop, rbSheetIndex = 0, 1
	rbQuiet = false
	schDelimiter, schSheetName = "", ""
	schSheetIndex = 1
	checkData = ""
	initName = ""
	cfg = nil
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

// runCmdErr executes the root command expecting a failure.
func runCmdErr(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		t.Fatalf("command %v succeeded, expected error", args)
	}
	return err
}

func TestCLI_InitCheckReport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	proj := filepath.Join(t.TempDir(), "engagement")

	runCmd(t, "init", proj)
	runCmd(t, "check", proj)

	dataPath := filepath.Join(proj, "data", "engagement_data.csv")
	outPath := filepath.Join(proj, "report.txt")
	runCmd(t, "report", dataPath, "--output", outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"[TOP-LEVEL KPIS]",
		"Players: 5",
		"Avg Session Duration (min): 74",
		"Avg Sessions/Week: 3.6",
		"Avg Purchases/User: 1.8",
		"High Engagement Retention: 40.00%",
		"[SEGMENT: by_genre]",
		"[SEGMENT: by_location]",
		"[SEGMENT: by_engagement]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ReportJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	proj := filepath.Join(t.TempDir(), "engagement")
	runCmd(t, "init", proj)

	outPath := filepath.Join(proj, "report.json")
	runCmd(t, "report", filepath.Join(proj, "data", "engagement_data.csv"),
		"--format", "json", "--output", outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"total_players": 5`) {
		t.Fatalf("json report missing player count:\n%s", out)
	}
	if !strings.Contains(out, `"retention_rate_high_engagement": 0.4`) {
		t.Fatalf("json report missing retention rate:\n%s", out)
	}
	if !strings.Contains(out, `"key": "GameGenre"`) {
		t.Fatalf("json report missing genre segment:\n%s", out)
	}
}

func TestCLI_CheckFailsOnIncompleteProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	proj := filepath.Join(t.TempDir(), "engagement")
	runCmd(t, "init", proj)
	if err := os.Remove(filepath.Join(proj, "README.md")); err != nil {
		t.Fatalf("remove readme: %v", err)
	}

	err := runCmdErr(t, "check", proj)
	if !strings.Contains(err.Error(), "not publish-ready") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestCLI_InitRefusesExistingProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	proj := filepath.Join(t.TempDir(), "engagement")
	runCmd(t, "init", proj)

	err := runCmdErr(t, "init", proj)
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected init error: %v", err)
	}
}

func TestCLI_ReportMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "absent.csv")

	err := runCmdErr(t, "report", missing)
	if !strings.Contains(err.Error(), "data file not found at") {
		t.Fatalf("unexpected report error: %v", err)
	}
}

func TestCLI_ReportBatchOutDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	csv := "PlayerID,GameGenre,EngagementLevel,SessionsPerWeek\n1,RPG,High,4\n2,Sports,Low,2\n"
	for _, name := range []string{"alpha.csv", "beta.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(csv), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	outDir := filepath.Join(dir, "reports")

	runCmd(t, "report-batch", filepath.Join(dir, "*.csv"),
		"--format", "json", "--out-dir", outDir, "--quiet")

	for _, name := range []string{"alpha.report.json", "beta.report.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(data), `"total_players": 2`) {
			t.Fatalf("unexpected report content in %s:\n%s", name, string(data))
		}
	}
}

func TestCLI_ReportBatchCollisionSuffix(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	csv := "PlayerID,GameGenre,EngagementLevel\n1,RPG,High\n"
	for _, sub := range []string{"d1", "d2"} {
		path := filepath.Join(dir, sub, "metrics.csv")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	outDir := filepath.Join(dir, "reports")

	runCmd(t, "report-batch", filepath.Join(dir, "d*", "metrics.csv"),
		"--out-dir", outDir, "--quiet")

	for _, name := range []string{"metrics.report.txt", "metrics__2.report.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing batch report %s: %v", name, err)
		}
	}
}

func TestCLI_SchemaRuns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	proj := filepath.Join(t.TempDir(), "engagement")
	runCmd(t, "init", proj)
	runCmd(t, "schema", filepath.Join(proj, "data", "engagement_data.csv"))
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runCmd(t, "config", "set", "top_rows", "8")
	runCmd(t, "config", "show")

	data, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".playmetrics", "config.yaml"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "top_rows: 8") {
		t.Fatalf("config not persisted:\n%s", string(data))
	}
}

// Package health validates that an analytics project directory is ready to
// publish: required files exist, the dataset carries the recognized schema,
// and the README covers the expected sections.
package health

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
)

// DefaultDataPath is where a scaffolded project keeps its dataset.
const DefaultDataPath = "data/engagement_data.csv"

// RequiredColumns is the full recognized dataset schema, in report order.
var RequiredColumns = []string{
	"PlayerID", "Age", "Gender", "Location", "GameGenre",
	"PlayTimeHours", "InGamePurchases", "GameDifficulty",
	"SessionsPerWeek", "AvgSessionDurationMinutes",
	"PlayerLevel", "AchievementsUnlocked", "EngagementLevel",
}

// ReadmeSections are the headings a publishable README must mention.
var ReadmeSections = []string{
	"Overview", "Dataset", "KPIs", "Dashboards", "Tech Stack", "Example Insight", "Quickstart",
}

// requiredPaths are the project-relative paths checked besides the dataset.
var requiredPaths = []string{
	"notebooks",
	"dashboards",
	"dashboards/screenshots",
	"README.md",
	".gitignore",
}

// Result collects what the three check groups found. A zero MissingX slice
// means that group passed.
type Result struct {
	MissingFiles    []string
	PresentColumns  []string
	MissingColumns  []string
	MissingSections []string
}

// OK reports whether every check passed.
func (r Result) OK() bool {
	return len(r.MissingFiles) == 0 && len(r.MissingColumns) == 0 && len(r.MissingSections) == 0
}

// Run executes all check groups against a project root. dataPath may be
// project-relative or absolute; empty selects the default location.
func Run(root, dataPath string) Result {
	if dataPath == "" {
		dataPath = DefaultDataPath
	}
	present, missingCols := CheckDatasetColumns(resolve(root, dataPath))
	return Result{
		MissingFiles:    CheckFiles(root, dataPath),
		PresentColumns:  present,
		MissingColumns:  missingCols,
		MissingSections: CheckReadme(filepath.Join(root, "README.md")),
	}
}

// CheckFiles reports which required paths are absent under root. The dataset
// path is checked alongside the fixed layout.
func CheckFiles(root, dataPath string) []string {
	paths := append([]string{dataPath}, requiredPaths...)
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(resolve(root, p)); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// CheckDatasetColumns probes the dataset header and splits the recognized
// schema into present and missing, both in schema order. An absent or
// unreadable dataset reports every column missing rather than failing.
func CheckDatasetColumns(path string) (present, missing []string) {
	header, err := readHeader(path)
	if err != nil {
		return nil, append([]string(nil), RequiredColumns...)
	}
	have := make(map[string]bool, len(header))
	for _, c := range header {
		have[strings.TrimSpace(c)] = true
	}
	for _, c := range RequiredColumns {
		if have[c] {
			present = append(present, c)
		} else {
			missing = append(missing, c)
		}
	}
	return present, missing
}

// CheckReadme reports which expected sections the README never mentions.
// Matching is case-insensitive substring; an absent file misses everything.
func CheckReadme(path string) []string {
	b, err := os.ReadFile(path)
	if err != nil {
		return append([]string(nil), ReadmeSections...)
	}
	content := strings.ToLower(string(b))
	var missing []string
	for _, s := range ReadmeSections {
		if !strings.Contains(content, strings.ToLower(s)) {
			missing = append(missing, s)
		}
	}
	return missing
}

func readHeader(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, err := dataset.ReadXLSXFile(path, "", 0)
		if err != nil {
			return nil, err
		}
		return t.Columns, nil
	}
	return dataset.ReadCSVHeader(path, dataset.ReadOptions{})
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

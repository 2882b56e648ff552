package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/playmetrics-cli/internal/analytics"
	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
	"github.com/KaramelBytes/playmetrics-cli/internal/project"
	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

// resolveDataPath picks the dataset for a report: an explicit positional
// argument wins, then --data, then the enclosing project manifest, then the
// configured data_path.
func resolveDataPath(args []string, dataFlag string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if dataFlag != "" {
		return dataFlag
	}
	if cwd, err := os.Getwd(); err == nil {
		if root, err := utils.FindProjectRoot(cwd); err == nil {
			if p, err := project.Load(root); err == nil && p.DatasetPath() != "" {
				return p.DatasetPath()
			}
		}
	}
	return activeConfig().DataPath
}

// parseDelimiter maps a --delimiter value to a rune for the CSV reader.
// Empty means auto-detect from the file extension.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab')", s)
	}
}

// loadDataset reads a CSV/TSV or XLSX file into a raw table.
func loadDataset(path, delimiter, sheetName string, sheetIndex int) (*dataset.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("data file not found at '%s' (run 'playmetrics init' or pass a path)", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return dataset.ReadXLSXFile(path, sheetName, sheetIndex)
	}
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	return dataset.ReadCSVFile(path, dataset.ReadOptions{Delimiter: delim})
}

// renderReport serializes a report in the requested format.
func renderReport(r *analytics.Report, format string, top int) ([]byte, error) {
	switch format {
	case "", "text":
		return []byte(analytics.RenderText(r, top)), nil
	case "json":
		return analytics.RenderJSON(r)
	case "yaml":
		return analytics.RenderYAML(r)
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use 'text'|'json'|'yaml')", format)
	}
}

func effectiveFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return activeConfig().Format
}

func effectiveTop(flag int) int {
	if flag > 0 {
		return flag
	}
	return activeConfig().TopRows
}

func effectiveDelimiter(flag string) string {
	if flag != "" {
		return flag
	}
	return activeConfig().Delimiter
}

// reportFileName derives the output name for a batch report written to
// --out-dir: <base>.report.<ext>.
func reportFileName(inputPath, format string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".report." + formatExt(format)
}

func formatExt(format string) string {
	switch format {
	case "json":
		return "json"
	case "yaml":
		return "yaml"
	default:
		return "txt"
	}
}

// printReport writes rendered bytes to stdout, ensuring a trailing newline.
func printReport(out []byte) {
	text := string(out)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Print(text)
}

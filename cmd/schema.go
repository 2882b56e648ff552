package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/playmetrics-cli/internal/dataset"
	"github.com/KaramelBytes/playmetrics-cli/internal/health"
)

var (
	schDelimiter  string
	schSheetName  string
	schSheetIndex int
)

var schemaCmd = &cobra.Command{
	Use:   "schema [file]",
	Short: "Inspect a dataset's columns against the expected schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDataPath(args, "")
		tbl, err := loadDataset(path, effectiveDelimiter(schDelimiter), schSheetName, schSheetIndex)
		if err != nil {
			return err
		}
		printSchema(os.Stdout, path, tbl)
		return nil
	},
}

// printSchema reports recognized, missing and extra columns plus numeric
// parse coverage for the loaded table.
func printSchema(w io.Writer, path string, tbl *dataset.Table) {
	fmt.Fprintf(w, "Dataset: %s (%d rows, %d columns)\n", path, len(tbl.Rows), len(tbl.Columns))

	names := make(map[string]bool, len(tbl.Columns))
	for _, c := range tbl.Columns {
		names[strings.TrimSpace(c)] = true
	}
	expected := make(map[string]bool, len(health.RequiredColumns))
	for _, c := range health.RequiredColumns {
		expected[c] = true
	}

	fmt.Fprintln(w, "\nRecognized columns:")
	count := 0
	for _, c := range health.RequiredColumns {
		if names[c] {
			fmt.Fprintf(w, "- %s\n", c)
			count++
		}
	}
	if count == 0 {
		fmt.Fprintln(w, "(none)")
	}

	fmt.Fprintln(w, "\nMissing columns:")
	count = 0
	for _, c := range health.RequiredColumns {
		if !names[c] {
			fmt.Fprintf(w, "- %s\n", c)
			count++
		}
	}
	if count == 0 {
		fmt.Fprintln(w, "(none)")
	}

	fmt.Fprintln(w, "\nExtra columns:")
	count = 0
	for _, c := range tbl.Columns {
		if !expected[strings.TrimSpace(c)] {
			fmt.Fprintf(w, "- %s\n", strings.TrimSpace(c))
			count++
		}
	}
	if count == 0 {
		fmt.Fprintln(w, "(none)")
	}

	norm := dataset.Normalize(tbl)
	fmt.Fprintln(w, "\nNumeric coverage:")
	count = 0
	for _, name := range dataset.NumericColumns {
		j, ok := norm.ColumnIndex(name)
		if !ok {
			continue
		}
		parsed := 0
		for _, row := range norm.Rows {
			if row[j] != dataset.Missing {
				parsed++
			}
		}
		miss := len(norm.Rows) - parsed
		if miss > 0 {
			fmt.Fprintf(w, "- %s: %d/%d parsed (%d missing)\n", name, parsed, len(norm.Rows), miss)
		} else {
			fmt.Fprintf(w, "- %s: %d/%d parsed\n", name, parsed, len(norm.Rows))
		}
		count++
	}
	if count == 0 {
		fmt.Fprintln(w, "(none)")
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	schemaCmd.Flags().StringVar(&schSheetName, "sheet-name", "", "XLSX: sheet name to read")
	schemaCmd.Flags().IntVar(&schSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/playmetrics-cli/internal/analytics"
	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

var (
	rbFormat     string
	rbTop        int
	rbDelimiter  string
	rbOutDir     string
	rbSheetName  string
	rbSheetIndex int
	rbQuiet      bool
)

var reportBatchCmd = &cobra.Command{
	Use:   "report-batch <files...>",
	Short: "Report on multiple CSV/TSV/XLSX datasets concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format := effectiveFormat(rbFormat)
		switch format {
		case "", "text", "json", "yaml":
		default:
			return fmt.Errorf("unsupported --format: %s (use 'text'|'json'|'yaml')", format)
		}
		delimiter := effectiveDelimiter(rbDelimiter)
		if _, err := parseDelimiter(delimiter); err != nil {
			return err
		}
		top := effectiveTop(rbTop)

		total := len(files)
		results := make([][]byte, total)
		eg, egCtx := errgroup.WithContext(cmd.Context())
		limit := 4
		if total < limit {
			limit = total
		}
		eg.SetLimit(limit)
		for i, path := range files {
			i, path := i, path
			if !rbQuiet {
				fmt.Printf("[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				start := time.Now()
				tbl, err := loadDataset(path, delimiter, rbSheetName, rbSheetIndex)
				if err != nil {
					return err
				}
				rep, err := analytics.BuildReport(egCtx, path, tbl)
				if err != nil {
					return err
				}
				out, err := renderReport(rep, format, top)
				if err != nil {
					return err
				}
				results[i] = out
				logger.Debug("dataset processed",
					zap.String("path", path),
					zap.Int("rows", rep.Rows),
					zap.Duration("took", time.Since(start)))
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		if rbOutDir != "" {
			if err := os.MkdirAll(rbOutDir, 0o755); err != nil {
				return err
			}
			for i, path := range files {
				outFile := uniqueReportPath(rbOutDir, path, format)
				if err := utils.SafeWriteFile(outFile, results[i]); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				if !rbQuiet {
					fmt.Printf("✓ Wrote %s\n", outFile)
				}
			}
			return nil
		}
		for _, out := range results {
			if !rbQuiet {
				printReport(out)
			}
		}
		return nil
	},
}

// expandInputs resolves glob patterns and literal paths into a unique, sorted
// file list.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// uniqueReportPath picks an output path under dir that does not clobber an
// existing report: <base>.report.<ext>, then <base>__2.report.<ext> and so on.
func uniqueReportPath(dir, inputPath, format string) string {
	out := filepath.Join(dir, reportFileName(inputPath, format))
	if _, err := os.Stat(out); os.IsNotExist(err) {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	idx := 2
	for {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d.report.%s", base, idx, formatExt(format)))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
		idx++
	}
}

func init() {
	rootCmd.AddCommand(reportBatchCmd)
	reportBatchCmd.Flags().StringVarP(&rbFormat, "format", "f", "", "output format: 'text' | 'json' | 'yaml' (default from config)")
	reportBatchCmd.Flags().IntVar(&rbTop, "top", 0, "rows shown per segment table in text output (default from config)")
	reportBatchCmd.Flags().StringVar(&rbDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportBatchCmd.Flags().StringVar(&rbOutDir, "out-dir", "", "write one report file per input instead of printing")
	reportBatchCmd.Flags().StringVar(&rbSheetName, "sheet-name", "", "XLSX: sheet name to read")
	reportBatchCmd.Flags().IntVar(&rbSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	reportBatchCmd.Flags().BoolVar(&rbQuiet, "quiet", false, "suppress progress and non-essential output")
}

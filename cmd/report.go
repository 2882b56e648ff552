package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/playmetrics-cli/internal/analytics"
	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

var (
	repData       string
	repFormat     string
	repTop        int
	repDelimiter  string
	repOutputPath string
	repSheetName  string
	repSheetIndex int
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Compute engagement KPIs and segment tables from a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDataPath(args, repData)
		tbl, err := loadDataset(path, effectiveDelimiter(repDelimiter), repSheetName, repSheetIndex)
		if err != nil {
			return err
		}
		logger.Debug("dataset loaded",
			zap.String("path", path),
			zap.Int("rows", len(tbl.Rows)),
			zap.Int("columns", len(tbl.Columns)))

		rep, err := analytics.BuildReport(cmd.Context(), path, tbl)
		if err != nil {
			return err
		}
		logger.Debug("report built",
			zap.String("report_id", rep.ID),
			zap.Int("players", rep.KPIs.TotalPlayers))

		out, err := renderReport(rep, effectiveFormat(repFormat), effectiveTop(repTop))
		if err != nil {
			return err
		}
		if repOutputPath != "" {
			if err := utils.SafeWriteFile(repOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", repOutputPath)
			return nil
		}
		printReport(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&repData, "data", "", "dataset path (defaults to the project manifest, then config data_path)")
	reportCmd.Flags().StringVarP(&repFormat, "format", "f", "", "output format: 'text' | 'json' | 'yaml' (default from config)")
	reportCmd.Flags().IntVar(&repTop, "top", 0, "rows shown per segment table in text output (default from config)")
	reportCmd.Flags().StringVar(&repDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "optional path to write the report")
	reportCmd.Flags().StringVar(&repSheetName, "sheet-name", "", "XLSX: sheet name to read")
	reportCmd.Flags().IntVar(&repSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

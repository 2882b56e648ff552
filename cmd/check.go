package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/playmetrics-cli/internal/health"
)

var checkData string

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Verify a project is ready to publish",
	Long: `Check inspects a project directory for the files, dataset columns and
README sections a publishable engagement-analysis project needs. It prints
warnings for anything missing and exits non-zero when the project is not
ready.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		res := health.Run(root, checkData)
		printCheckResult(os.Stdout, res)
		if !res.OK() {
			return fmt.Errorf("project is not publish-ready")
		}
		return nil
	},
}

func printCheckResult(w io.Writer, res health.Result) {
	if res.OK() {
		fmt.Fprintln(w, "✓ Project is publish-ready.")
		return
	}
	if len(res.MissingFiles) > 0 {
		fmt.Fprintln(w, "⚠ Missing files/directories:")
		for _, f := range res.MissingFiles {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	if len(res.MissingColumns) > 0 {
		fmt.Fprintf(w, "⚠ Dataset is missing required columns: %s\n", strings.Join(res.MissingColumns, ", "))
	}
	if len(res.MissingSections) > 0 {
		fmt.Fprintf(w, "⚠ README is missing sections: %s\n", strings.Join(res.MissingSections, ", "))
	}
	fmt.Fprintln(w, "⚠ Warnings found. Please address the items above.")
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkData, "data", "", "dataset path to check (default data/engagement_data.csv under the project)")
}

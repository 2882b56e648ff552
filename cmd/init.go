package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/playmetrics-cli/internal/health"
	"github.com/KaramelBytes/playmetrics-cli/internal/project"
	"github.com/KaramelBytes/playmetrics-cli/internal/utils"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Scaffold a publishable engagement-analysis project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		// Refuse to overwrite an existing project.
		if project.Exists(dir) {
			return fmt.Errorf("project already exists at %s", dir)
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("inspect project directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize project", dir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat project directory: %w", err)
		}

		name := initName
		if name == "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve project path: %w", err)
			}
			name = filepath.Base(abs)
		}
		if err := scaffold(dir, name); err != nil {
			return err
		}
		fmt.Printf("✓ Project initialized: %s\n", dir)
		fmt.Printf("✓ Sample dataset written to %s\n", filepath.Join(dir, health.DefaultDataPath))
		return nil
	},
}

// scaffold lays out the directories and starter files check expects.
func scaffold(dir, name string) error {
	for _, sub := range []string{"data", "notebooks", "dashboards/screenshots"} {
		if err := utils.EnsureProjectDir(filepath.Join(dir, sub)); err != nil {
			return fmt.Errorf("create %s: %w", sub, err)
		}
	}
	files := map[string]string{
		health.DefaultDataPath: sampleDataset,
		"README.md":            fmt.Sprintf(readmeTemplate, name),
		".gitignore":           gitignoreTemplate,
	}
	for rel, content := range files {
		if err := utils.SafeWriteFile(filepath.Join(dir, rel), []byte(content)); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
	}
	p := project.New(name, health.DefaultDataPath, dir)
	if err := p.Save(); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

const sampleDataset = `PlayerID,Age,Gender,Location,GameGenre,PlayTimeHours,InGamePurchases,GameDifficulty,SessionsPerWeek,AvgSessionDurationMinutes,PlayerLevel,AchievementsUnlocked,EngagementLevel
9001,24,Male,Asia,RPG,14.2,3,Medium,6,108,27,12,High
9002,31,Female,Europe,Strategy,9.8,0,Hard,4,95,34,18,Medium
9003,22,Other,USA,Sports,5.1,1,Easy,2,47,11,4,Low
9004,28,Female,Asia,Puzzle,11.6,5,Medium,5,88,23,9,High
9005,35,Male,Europe,RPG,3.4,0,Easy,1,32,8,2,Low
`

const readmeTemplate = `# %s

## Overview
Descriptive analysis of player engagement: who plays, how often, and what
keeps them coming back.

## Dataset
data/engagement_data.csv holds one row per player. Replace the sample rows
with your export before publishing.

## KPIs
- Average session duration (minutes)
- Average sessions per week
- Average in-game purchases per user
- High-engagement retention rate

## Dashboards
Exported dashboard images live in dashboards/screenshots.

## Tech Stack
playmetrics CLI for reporting, notebooks for exploration.

## Example Insight
High-engagement players average roughly twice the weekly sessions of the
rest of the player base.

## Quickstart
    playmetrics report
    playmetrics check
`

const gitignoreTemplate = `*.report.txt
*.report.json
*.report.yaml
.DS_Store
`

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initName, "name", "", "project name for the manifest (default: directory name)")
}

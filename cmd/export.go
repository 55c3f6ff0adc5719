package cmd

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
)

// Export command flags.
var (
	exportFlagFormat string
	exportFlagBackup bool
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"ex", "x", "dump"},
	Short:   "Export wellness data",
	Long: `Export goals and mood history, or create a full database backup
including chat history and settings.

Examples:
  mindfulmate export
  mindfulmate export --format csv -o moods.csv
  mindfulmate export --backup -o backup.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagFormat, "format", "F", "json", "Output format: json, csv")
	exportCmd.Flags().BoolVarP(&exportFlagBackup, "backup", "b", false, "Full database backup")
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file (stdout if omitted)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	// Handle backup mode
	if exportFlagBackup {
		return runBackup()
	}

	goals, err := ctx.GoalRepo.List()
	if err != nil {
		return err
	}

	moods, err := ctx.MoodRepo.List()
	if err != nil {
		return err
	}

	writer, closeFn, err := exportWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	switch exportFlagFormat {
	case "csv":
		return exportCSV(writer, goals, moods)
	default:
		return exportJSON(writer, goals, moods)
	}
}

// exportWriter opens the output destination, defaulting to stdout.
func exportWriter() (*os.File, func(), error) {
	if exportFlagOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(exportFlagOutput)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func exportJSON(w *os.File, goals []*model.Goal, moods []*model.MoodEntry) error {
	doc := struct {
		Version    string                `json:"version"`
		ExportedAt string                `json:"exported_at"`
		Goals      []*output.GoalOutput  `json:"goals"`
		Moods      []*output.MoodOutput  `json:"moods"`
		GoalCount  int                   `json:"goal_count"`
		MoodCount  int                   `json:"mood_count"`
	}{
		Version:    "1",
		ExportedAt: time.Now().Format(time.RFC3339),
		Goals:      make([]*output.GoalOutput, len(goals)),
		Moods:      make([]*output.MoodOutput, len(moods)),
		GoalCount:  len(goals),
		MoodCount:  len(moods),
	}

	for i, g := range goals {
		doc.Goals[i] = output.NewGoalOutput(g)
	}
	for i, m := range moods {
		doc.Moods[i] = output.NewMoodOutput(m)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func exportCSV(w *os.File, goals []*model.Goal, moods []*model.MoodEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Goals section
	if err := writer.Write([]string{
		"type", "key", "text_or_note", "start", "end", "completed_or_score", "created_at",
	}); err != nil {
		return err
	}

	for _, g := range goals {
		if err := writer.Write([]string{
			"goal",
			g.Key,
			g.Text,
			g.StartTime,
			g.EndTime,
			strconv.FormatBool(g.Completed),
			g.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	for _, m := range moods {
		if err := writer.Write([]string{
			"mood",
			m.Key,
			m.Note,
			"", "",
			strconv.Itoa(m.Score),
			m.LoggedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	return nil
}

func runBackup() error {
	// Get all data
	goals, err := ctx.GoalRepo.List()
	if err != nil {
		return err
	}

	moods, err := ctx.MoodRepo.List()
	if err != nil {
		return err
	}

	messages, err := ctx.HistoryRepo.List()
	if err != nil {
		return err
	}

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	// Build backup
	backup := struct {
		Version    string             `json:"version"`
		ExportedAt string             `json:"exported_at"`
		Settings   *model.Settings    `json:"settings"`
		Goals      []*model.Goal      `json:"goals"`
		Moods      []*model.MoodEntry `json:"moods"`
		Messages   []*model.Message   `json:"messages"`
	}{
		Version:    "1",
		ExportedAt: time.Now().Format(time.RFC3339),
		Settings:   settings,
		Goals:      goals,
		Moods:      moods,
		Messages:   messages,
	}

	writer, closeFn, err := exportWriter()
	if err != nil {
		return err
	}
	defer closeFn()

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return err
	}

	// Print summary if writing to file
	if exportFlagOutput != "" && !ctx.IsJSON() {
		cli := ctx.CLIFormatter()
		cli.Success("Backup created: " + exportFlagOutput)
		cli.Printf("  Goals: %d\n", len(goals))
		cli.Printf("  Moods: %d\n", len(moods))
		cli.Printf("  Messages: %d\n", len(messages))
	}

	return nil
}

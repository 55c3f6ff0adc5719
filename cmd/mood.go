package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/validate"
)

// Mood command flags.
var moodListFlagDays int

// moodCmd represents the mood command.
var moodCmd = &cobra.Command{
	Use:     "mood [command]",
	Aliases: []string{"m"},
	Short:   "Track your daily mood",
	Long: `Log and review daily mood ratings on a 1-5 scale.

One entry is kept per calendar day; logging again on the same day
replaces the earlier entry.

  1 Rough   2 Low   3 Okay   4 Good   5 Great

Examples:
  mindfulmate mood log 4
  mindfulmate mood log 2 "exam stress"
  mindfulmate mood list`,
	RunE: runMoodList,
}

// moodLogCmd logs today's mood.
var moodLogCmd = &cobra.Command{
	Use:   "log SCORE [NOTE]",
	Short: "Log today's mood (1-5)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMoodLog,
}

// moodListCmd shows recent mood history.
var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "history"},
	Short:   "Show recent mood history",
	RunE:    runMoodList,
}

func init() {
	moodListCmd.Flags().IntVarP(&moodListFlagDays, "days", "d", 7, "Number of recent days to show")

	moodCmd.AddCommand(moodLogCmd)
	moodCmd.AddCommand(moodListCmd)
	rootCmd.AddCommand(moodCmd)
}

func runMoodLog(cmd *cobra.Command, args []string) error {
	score, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("score must be a number between 1 and 5")
	}
	if err := validate.MoodScore(score); err != nil {
		return err
	}

	note := ""
	if len(args) > 1 {
		note = strings.TrimSpace(args[1])
	}
	if err := validate.Note(note); err != nil {
		return err
	}

	entry := model.NewMoodEntry(score, note)
	if err := ctx.MoodRepo.Save(entry); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewMoodOutput(entry))
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Logged mood: %s (%d/5)", output.MoodLabel(score), score))
	return nil
}

func runMoodList(cmd *cobra.Command, args []string) error {
	entries, err := ctx.MoodRepo.ListRecent(moodListFlagDays)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintMoods(entries)
	}

	if len(entries) == 0 {
		cli := ctx.CLIFormatter()
		cli.Muted("No moods logged yet.")
		cli.Muted("Use 'mindfulmate mood log <1-5>' to log one.")
		return nil
	}

	ctx.CLIFormatter().PrintMoodHistory(entries)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/calendar"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/parser"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/validate"
)

// Goal command flags.
var (
	goalAddFlagStart  string
	goalAddFlagEnd    string
	goalEditFlagText  string
	goalEditFlagStart string
	goalEditFlagEnd   string
)

// goalCmd represents the goal command.
var goalCmd = &cobra.Command{
	Use:     "goal [command]",
	Aliases: []string{"goals", "g"},
	Short:   "Manage daily goals",
	Long: `View and manage daily goals.

Goals can carry an optional HH:MM start and end time. A goal with a start
time triggers a reminder when the daemon is running and notifications are
enabled.

Examples:
  mindfulmate goal
  mindfulmate goal add "Morning revision" --start 08:30 --end 09:30
  mindfulmate goal done 3f9a2c
  mindfulmate goal edit 3f9a2c --start 09:00
  mindfulmate goal calendar 3f9a2c
  mindfulmate goal delete 3f9a2c`,
	RunE: runGoalList,
}

// goalAddCmd adds a new goal.
var goalAddCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add a new goal",
	Long: `Add a new goal, optionally scheduled at an HH:MM start time.

Times accept the 24-hour form directly or natural language like "5pm".

Examples:
  mindfulmate goal add "Morning revision"
  mindfulmate goal add "Evening walk" --start 18:00
  mindfulmate goal add "Study block" --start 2pm --end "quarter past three"`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalAdd,
}

// goalListCmd lists all goals.
var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all goals",
	RunE:    runGoalList,
}

// goalDoneCmd toggles goal completion.
var goalDoneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle"},
	Short:   "Toggle a goal's completion",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalDone,
}

// goalEditCmd edits a goal.
var goalEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a goal's text or schedule",
	Long: `Edit a goal. Changing the start time re-arms its reminder.

Examples:
  mindfulmate goal edit 3f9a2c --text "Revised plan"
  mindfulmate goal edit 3f9a2c --start 10:00 --end 10:45`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalEdit,
}

// goalDeleteCmd deletes a goal.
var goalDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalDelete,
}

// goalCalendarCmd prints the calendar link for a goal.
var goalCalendarCmd = &cobra.Command{
	Use:     "calendar ID",
	Aliases: []string{"cal"},
	Short:   "Print a Google Calendar link for a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalCalendar,
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalAddFlagStart, "start", "s", "", "Start time (HH:MM or natural language)")
	goalAddCmd.Flags().StringVarP(&goalAddFlagEnd, "end", "e", "", "End time (HH:MM or natural language)")

	goalEditCmd.Flags().StringVarP(&goalEditFlagText, "text", "t", "", "New goal text")
	goalEditCmd.Flags().StringVarP(&goalEditFlagStart, "start", "s", "", "New start time")
	goalEditCmd.Flags().StringVarP(&goalEditFlagEnd, "end", "e", "", "New end time")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalDoneCmd)
	goalCmd.AddCommand(goalEditCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	goalCmd.AddCommand(goalCalendarCmd)
	rootCmd.AddCommand(goalCmd)
}

// parseClockFlag normalizes a clock flag value, returning "" for empty input.
func parseClockFlag(name, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	result := parser.ParseClock(value)
	if result.Error != nil {
		return "", fmt.Errorf("invalid %s time %q: %w", name, value, result.Error)
	}
	if err := validate.ClockTime(result.Clock); err != nil {
		return "", fmt.Errorf("invalid %s time %q: %w", name, value, err)
	}
	return result.Clock, nil
}

// findGoal resolves a goal by short or full ID.
func findGoal(id string) (*model.Goal, error) {
	goal, err := ctx.GoalRepo.GetByShortID(id)
	if err != nil {
		if storage.IsErrKeyNotFound(err) {
			return nil, fmt.Errorf("no goal found with id '%s'", id)
		}
		return nil, err
	}
	return goal, nil
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	text := args[0]
	if err := validate.GoalText(text); err != nil {
		return err
	}

	start, err := parseClockFlag("start", goalAddFlagStart)
	if err != nil {
		return err
	}
	end, err := parseClockFlag("end", goalAddFlagEnd)
	if err != nil {
		return err
	}

	goal := model.NewGoal(text, start, end)
	if err := ctx.GoalRepo.Create(goal); err != nil {
		return err
	}

	// Auto-sync opens the calendar link for every new goal
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		resp := struct {
			Status string             `json:"status"`
			Goal   *output.GoalOutput `json:"goal"`
			URL    string             `json:"calendar_url,omitempty"`
		}{Status: "created", Goal: output.NewGoalOutput(goal)}
		if settings.AutoSync {
			resp.URL = calendar.EventURL(goal)
		}
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added goal %s", goal.ShortID()))
	cli.PrintGoal(goal)

	if settings.AutoSync {
		cli.Println("")
		cli.Muted("Add to calendar:")
		cli.Println("  " + calendar.EventURL(goal))
	}

	return nil
}

func runGoalList(cmd *cobra.Command, args []string) error {
	goals, err := ctx.GoalRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintGoals(goals)
	}

	if len(goals) == 0 {
		cli := ctx.CLIFormatter()
		cli.Muted("No goals yet.")
		cli.Muted("Use 'mindfulmate goal add \"...\"' to add one.")
		return nil
	}

	ctx.CLIFormatter().PrintGoalList(goals)
	return nil
}

func runGoalDone(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}

	goal, err = ctx.GoalRepo.ToggleCompleted(goal.Key)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewGoalOutput(goal))
	}

	cli := ctx.CLIFormatter()
	if goal.Completed {
		cli.Success(fmt.Sprintf("Completed: %s", goal.Text))
	} else {
		cli.Success(fmt.Sprintf("Reopened: %s", goal.Text))
	}
	return nil
}

func runGoalEdit(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("text") && !cmd.Flags().Changed("start") && !cmd.Flags().Changed("end") {
		return fmt.Errorf("nothing to edit; use --text, --start, or --end")
	}

	if cmd.Flags().Changed("text") {
		if err := validate.GoalText(goalEditFlagText); err != nil {
			return err
		}
		goal.Text = goalEditFlagText
	}

	if cmd.Flags().Changed("start") {
		start, err := parseClockFlag("start", goalEditFlagStart)
		if err != nil {
			return err
		}
		// SetStartTime re-arms the reminder when the value changes
		goal.SetStartTime(start)
	}

	if cmd.Flags().Changed("end") {
		end, err := parseClockFlag("end", goalEditFlagEnd)
		if err != nil {
			return err
		}
		goal.EndTime = end
	}

	if err := ctx.GoalRepo.Update(goal); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewGoalOutput(goal))
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Updated goal %s", goal.ShortID()))
	cli.PrintGoal(goal)
	return nil
}

func runGoalDelete(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}

	if err := ctx.GoalRepo.Delete(goal.Key); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status": "deleted",
			"id":     goal.ShortID(),
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted: %s", goal.Text))
	return nil
}

func runGoalCalendar(cmd *cobra.Command, args []string) error {
	goal, err := findGoal(args[0])
	if err != nil {
		return err
	}

	url := calendar.EventURL(goal)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"id":           goal.ShortID(),
			"calendar_url": url,
		})
	}

	ctx.Formatter.Println(url)
	return nil
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard showing today at a glance.

The dashboard shows:
  - Today's mood with a 7-day trend
  - Your goals with schedules and completion state
  - Daily progress toward completing every goal

Keyboard Controls:
  j/k   - Move between goals
  space - Toggle the selected goal done/not done
  r     - Refresh data
  q     - Quit dashboard

Examples:
  mindfulmate dashboard
  mindfulmate dash
  mindfulmate tui`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// Configure the dashboard
	config := tui.DashboardConfig{
		GoalRepo: ctx.GoalRepo,
		MoodRepo: ctx.MoodRepo,
	}

	// Run the TUI dashboard
	return tui.Run(config)
}

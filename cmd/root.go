// Package cmd provides the CLI commands for MindfulMate.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/errors"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/runtime"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/storage"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mindfulmate",
	Short: "A companion for student wellness",
	Long: `MindfulMate is a command-line wellness companion for students:
a supportive AI chat, daily goals with reminders, mood tracking,
and a guided breathing exercise.

Examples:
  mindfulmate chat "I'm feeling stressed about exams"
  mindfulmate goal add "Morning revision" --start 08:30 --end 09:30
  mindfulmate mood log 4 "slept well"
  mindfulmate breathe
  mindfulmate daemon start`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's overview
		return runOverview(cmd, args)
	},
}

// runOverview shows today's goals and mood at a glance.
func runOverview(cmd *cobra.Command, args []string) error {
	goals, err := ctx.GoalRepo.List()
	if err != nil {
		return err
	}

	mood, err := ctx.MoodRepo.Today()
	if err != nil && !storage.IsErrKeyNotFound(err) {
		return err
	}

	if ctx.IsJSON() {
		resp := struct {
			Goals *output.GoalsResponse `json:"goals"`
			Mood  *output.MoodOutput    `json:"mood,omitempty"`
		}{Goals: output.NewGoalsResponse(goals)}
		if mood != nil {
			resp.Mood = output.NewMoodOutput(mood)
		}
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	cli.PrintGoalList(goals)
	cli.Println("")
	if mood != nil {
		cli.PrintMoodEntry(mood)
	} else {
		cli.Muted("No mood logged today. Use 'mindfulmate mood log <1-5>'.")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mindfulmate %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		ctx.JSONFormatter().PrintError("error", err.Error(), errors.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
	}
	os.Exit(1)
}

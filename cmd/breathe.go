package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/timer"
)

// Breathe command flags.
var (
	breatheFlagCycles int
)

// breatheCmd represents the breathe command.
var breatheCmd = &cobra.Command{
	Use:     "breathe [--cycles COUNT]",
	Aliases: []string{"b", "breath", "breathing"},
	Short:   "Start a guided 4-7-8 breathing session",
	Long: `Start a guided 4-7-8 breathing session in the terminal.

Each cycle is inhale for 4 seconds, hold for 7, exhale for 8. The
default session runs 4 cycles, which takes a little over a minute.

Keyboard Controls:
  SPACE  Pause/resume the countdown
  R      Restart from the first cycle
  Q      Quit the session early
  Ctrl+C Quit (same as Q)

Examples:
  mindfulmate breathe
  mindfulmate breathe --cycles 8
  mindfulmate breathe --cycles 0   # breathe until you quit`,
	RunE: runBreathe,
}

func init() {
	breatheCmd.Flags().IntVarP(&breatheFlagCycles, "cycles", "c", 4,
		"Number of breathing cycles (0 for unlimited)")

	rootCmd.AddCommand(breatheCmd)
}

func runBreathe(cmd *cobra.Command, args []string) error {
	if breatheFlagCycles < 0 {
		return fmt.Errorf("cycles must be zero or positive, got %d", breatheFlagCycles)
	}

	session := timer.NewBreathing(timer.BreathingConfig{
		TotalCycles: breatheFlagCycles,
	})

	// Show starting message
	cli := ctx.CLIFormatter()
	cli.Println("")
	cli.Println("4-7-8 breathing: inhale 4s, hold 7s, exhale 8s")
	if breatheFlagCycles > 0 {
		cli.Printf("  Cycles: %d (about %s)\n\n", breatheFlagCycles,
			(time.Duration(breatheFlagCycles) * 19 * time.Second).Round(time.Second))
	} else {
		cli.Printf("  Cycles: unlimited (press Q to stop)\n\n")
	}
	cli.Muted("Press any key to start...")

	// Wait for key press to start
	buf := make([]byte, 1)
	os.Stdin.Read(buf)

	if err := session.Run(context.Background()); err != nil {
		return err
	}

	fmt.Println()
	state := session.GetState()

	if session.WasInterrupted() {
		cli.Warning(fmt.Sprintf("Session ended early after %d cycle(s)", state.CyclesDone))
		return nil
	}

	cli.Success(fmt.Sprintf("Completed %d breathing cycle(s). Nice work.", state.CyclesDone))
	return nil
}

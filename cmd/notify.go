package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/notify"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/validate"
)

// notifyCmd represents the notify command.
var notifyCmd = &cobra.Command{
	Use:     "notify [command]",
	Aliases: []string{"n", "notifications"},
	Short:   "Manage goal reminders",
	Long: `Manage the notification permission that gates goal reminders.

Reminders fire only while the daemon is running and permission is
granted. Denying permission silences reminders without touching
your goals.

Examples:
  mindfulmate notify enable
  mindfulmate notify deny
  mindfulmate notify status
  mindfulmate notify test
  mindfulmate notify webhook https://example.com/hook
  mindfulmate notify webhook --clear`,
	RunE: runNotifyStatus,
}

// notifyEnableCmd grants notification permission.
var notifyEnableCmd = &cobra.Command{
	Use:     "enable",
	Aliases: []string{"grant", "on"},
	Short:   "Enable goal reminders",
	RunE:    runNotifyEnable,
}

// notifyDenyCmd denies notification permission.
var notifyDenyCmd = &cobra.Command{
	Use:     "deny",
	Aliases: []string{"disable", "off"},
	Short:   "Silence goal reminders",
	RunE:    runNotifyDeny,
}

// notifyStatusCmd shows the current permission state.
var notifyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show notification status",
	RunE:  runNotifyStatus,
}

// notifyTestCmd sends a test notification.
var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	RunE:  runNotifyTest,
}

// notifyWebhookCmd configures the webhook mirror.
var notifyWebhookCmd = &cobra.Command{
	Use:   "webhook [URL]",
	Short: "Mirror reminders to a webhook endpoint",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNotifyWebhook,
}

var notifyWebhookFlagClear bool

func init() {
	notifyWebhookCmd.Flags().BoolVar(&notifyWebhookFlagClear, "clear", false, "Remove the configured webhook")

	notifyCmd.AddCommand(notifyEnableCmd)
	notifyCmd.AddCommand(notifyDenyCmd)
	notifyCmd.AddCommand(notifyStatusCmd)
	notifyCmd.AddCommand(notifyTestCmd)
	notifyCmd.AddCommand(notifyWebhookCmd)
	rootCmd.AddCommand(notifyCmd)
}

func runNotifyEnable(cmd *cobra.Command, args []string) error {
	if err := ctx.SettingsRepo.SetPermission(model.PermissionGranted); err != nil {
		return err
	}

	// Confirm through the same surface reminders will use, so the user
	// sees immediately whether the platform can show them.
	sink := notify.NewDesktopSink()
	n := model.NewNotification(model.NotifyPermGrant,
		"MindfulMate", "Reminders are enabled. You've got this!")
	sendErr := sink.Send(context.Background(), n)

	if ctx.IsJSON() {
		resp := map[string]interface{}{
			"status":     "enabled",
			"permission": string(model.PermissionGranted),
			"displayed":  sendErr == nil,
		}
		return ctx.Formatter.JSON(resp)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Reminders enabled.")
	if sendErr != nil {
		cli.Warning("This platform cannot show desktop notifications; reminders will be logged only.")
	}
	cli.Muted("Run 'mindfulmate daemon start' so scheduled goals can alert you.")
	return nil
}

func runNotifyDeny(cmd *cobra.Command, args []string) error {
	if err := ctx.SettingsRepo.SetPermission(model.PermissionDenied); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status":     "denied",
			"permission": string(model.PermissionDenied),
		})
	}

	ctx.CLIFormatter().Success("Reminders silenced. Your goals are untouched.")
	return nil
}

func runNotifyStatus(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"permission":  string(settings.Permission),
			"enabled":     settings.AlertsEnabled(),
			"webhook_url": settings.WebhookURL,
		})
	}

	cli := ctx.CLIFormatter()
	switch settings.Permission {
	case model.PermissionGranted:
		cli.Success("Reminders are enabled.")
	case model.PermissionDenied:
		cli.Warning("Reminders are silenced.")
	default:
		cli.Muted("Reminders are not set up yet.")
		cli.Muted("Use 'mindfulmate notify enable' to turn them on.")
	}

	if settings.WebhookURL != "" {
		cli.Printf("Webhook: %s\n", settings.WebhookURL)
	}
	return nil
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	dispatcher := notify.NewDispatcher(notify.NewDesktopSink())
	if settings.WebhookURL != "" {
		dispatcher.AddSink(notify.NewWebhookSink(settings.WebhookURL))
	}

	n := model.NewNotification(model.NotifyTest,
		"MindfulMate Test", "If you can read this, reminders will reach you.")
	results := dispatcher.Dispatch(context.Background(), n)

	if ctx.IsJSON() {
		type sinkResult struct {
			Sink    string `json:"sink"`
			Success bool   `json:"success"`
			Error   string `json:"error,omitempty"`
		}
		out := make([]sinkResult, 0, len(results))
		for _, r := range results {
			sr := sinkResult{Sink: r.SinkName, Success: r.Success}
			if r.Error != nil {
				sr.Error = r.Error.Error()
			}
			out = append(out, sr)
		}
		return ctx.Formatter.JSON(struct {
			Results []sinkResult `json:"results"`
		}{Results: out})
	}

	cli := ctx.CLIFormatter()
	for _, r := range results {
		if r.Success {
			cli.Success(fmt.Sprintf("%s: delivered in %s", r.SinkName, r.Duration.Round(time.Millisecond)))
		} else {
			cli.Error(fmt.Sprintf("%s: %v", r.SinkName, r.Error))
		}
	}
	return nil
}

func runNotifyWebhook(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	switch {
	case notifyWebhookFlagClear:
		settings.WebhookURL = ""
	case len(args) == 1:
		if err := validate.URL(args[0]); err != nil {
			return err
		}
		settings.WebhookURL = args[0]
	default:
		if settings.WebhookURL == "" {
			ctx.CLIFormatter().Muted("No webhook configured.")
			return nil
		}
		ctx.Formatter.Println(settings.WebhookURL)
		return nil
	}

	if err := ctx.SettingsRepo.Update(settings); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{
			"status":      "updated",
			"webhook_url": settings.WebhookURL,
		})
	}

	cli := ctx.CLIFormatter()
	if settings.WebhookURL == "" {
		cli.Success("Webhook removed.")
	} else {
		cli.Success("Webhook set. Use 'mindfulmate notify test' to verify it.")
	}
	return nil
}

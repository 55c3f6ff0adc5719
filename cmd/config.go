package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/validate"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Manage application settings",
	Long: `View and modify application settings.

Examples:
  mindfulmate config get
  mindfulmate config get autosync
  mindfulmate config set autosync on
  mindfulmate config set webhook https://example.com/hook`,
}

// configGetCmd gets configuration values.
var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get a setting",
	Long: `Get a setting or show all settings.

Keys:
  autosync     Whether new goals open a calendar event link
  permission   Notification permission state
  webhook      Webhook alert endpoint

Examples:
  mindfulmate config get
  mindfulmate config get autosync`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets configuration values.
var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a setting",
	Long: `Set a setting.

Keys and values:
  autosync on|off   Open a calendar event link for every new goal
  webhook URL       Mirror reminders to a webhook ("" to clear)

Notification permission is managed separately:
  mindfulmate notify enable
  mindfulmate notify deny

Examples:
  mindfulmate config set autosync on
  mindfulmate config set webhook https://example.com/hook
  mindfulmate config set webhook ""`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigGet handles the config get command.
func runConfigGet(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	// Show everything when no key is given
	if len(args) == 0 {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]interface{}{
				"autosync":   settings.AutoSync,
				"permission": string(settings.Permission),
				"webhook":    settings.WebhookURL,
			})
		}

		ctx.Formatter.Println("Settings:")
		ctx.Formatter.Println("")
		ctx.Formatter.Printf("  autosync:    %s\n", formatOnOff(settings.AutoSync))
		ctx.Formatter.Printf("  permission:  %s\n", settings.Permission)
		ctx.Formatter.Printf("  webhook:     %s\n", formatOrNone(settings.WebhookURL))
		return nil
	}

	key := args[0]
	var value interface{}

	switch key {
	case "autosync":
		value = formatOnOff(settings.AutoSync)
	case "permission":
		value = string(settings.Permission)
	case "webhook":
		value = settings.WebhookURL
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"key":   key,
			"value": value,
		})
	}

	ctx.Formatter.Printf("%v\n", value)
	return nil
}

// runConfigSet handles the config set command.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	settings, err := ctx.SettingsRepo.Get()
	if err != nil {
		return err
	}

	switch key {
	case "autosync":
		enabled, err := parseOnOff(value)
		if err != nil {
			return err
		}
		settings.AutoSync = enabled

	case "webhook":
		if value != "" {
			if err := validate.URL(value); err != nil {
				return err
			}
		}
		settings.WebhookURL = value

	case "permission":
		return fmt.Errorf("permission is managed with: mindfulmate notify enable|deny")

	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := ctx.SettingsRepo.Update(settings); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	ctx.Formatter.Printf("Updated %s = %s\n", key, value)
	return nil
}

// parseOnOff parses an on/off value.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enabled", "true", "yes", "1":
		return true, nil
	case "off", "disabled", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid value: %s (use on/off)", s)
	}
}

func formatOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

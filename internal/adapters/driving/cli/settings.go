package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change sign-in and logging settings.

Settings are stored in config.toml in the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting.

Available keys:
  timeout           How long sign-in waits for the browser (e.g. 90s, 5m)
  name-placeholder  Name used when the Google account has no display name
  credentials-file  OAuth client JSON to use instead of the bundled one ("" to reset)
  verbose           Print debug output by default (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Printf("  Timeout: %s\n", settings.Auth.Timeout)
	cmd.Printf("  Name placeholder: %s\n", valueOrUnset(settings.Auth.NamePlaceholder))
	if settings.Auth.CredentialsFile != "" {
		cmd.Printf("  Credentials file: %s\n", settings.Auth.CredentialsFile)
	} else {
		cmd.Printf("  Credentials file: (bundled)\n")
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Log.Verbose))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := strings.ToLower(args[0]), args[1]

	var err error
	switch key {
	case "timeout":
		var timeout time.Duration
		timeout, err = parseTimeout(value)
		if err != nil {
			return err
		}
		err = settingsService.SetAuthTimeout(timeout)
	case "name-placeholder":
		err = settingsService.SetNamePlaceholder(value)
	case "credentials-file":
		err = settingsService.SetCredentialsFile(value)
	case "verbose":
		var v bool
		v, err = strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		err = settingsService.SetVerbose(v)
	default:
		return fmt.Errorf("unknown setting %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s to %q\n", key, value)
	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return timeout, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

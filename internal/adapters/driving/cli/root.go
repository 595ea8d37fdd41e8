// Package cli provides the spatialshot command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/core/ports/driving"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by the composition root.
var (
	authService     driving.AuthService
	vaultService    driving.VaultService
	settingsService driving.SettingsService
	profileWatcher  driven.ProfileWatcher
)

// Services groups the core services the commands call.
type Services struct {
	Auth           driving.AuthService
	Vault          driving.VaultService
	Settings       driving.SettingsService
	ProfileWatcher driven.ProfileWatcher
}

// ServiceFactory builds services for a config directory.
// An empty configDir means the default location.
type ServiceFactory func(configDir string) (Services, error)

var serviceFactory ServiceFactory

// Global flags.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "spatialshot",
	Short: "Spatialshot account and API key manager",
	Long: `Sign in with Google and manage the API keys Spatialshot uses.

Keys are encrypted at rest with a key derived from this machine, so a copied
config directory cannot be decrypted elsewhere.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Config directory (default: $SPATIALSHOT_CONFIG_DIR or the user config dir)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly.
func SetServices(s Services) {
	authService = s.Auth
	vaultService = s.Vault
	settingsService = s.Settings
	profileWatcher = s.ProfileWatcher
}

// SetServiceFactory defers service construction until flags are parsed.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	consoleNotifier.SetOutput(cmd.OutOrStdout())

	if serviceFactory == nil {
		return nil
	}
	services, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	return nil
}

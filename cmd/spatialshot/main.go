// Command spatialshot signs the user in with Google and manages the API keys
// the Spatialshot desktop app uses.
package main

import (
	"os"

	"github.com/spatialshot/spatialshot/internal/adapters/driven/config/file"
	googleauth "github.com/spatialshot/spatialshot/internal/adapters/driven/oauth"
	"github.com/spatialshot/spatialshot/internal/adapters/driving/cli"
	loopback "github.com/spatialshot/spatialshot/internal/adapters/driving/oauth"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/core/services"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// version can be set during build with -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices is the composition root: file-backed stores in configDir,
// the Google provider, and the loopback receiver.
func buildServices(configDir string) (cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return cli.Services{}, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, err
	}
	settingsService := services.NewSettingsService(configStore)
	if settings, err := settingsService.Get(); err == nil && settings.Log.Verbose {
		logger.SetVerbose(true)
	}
	logger.Debug("Config directory: %s", configDir)

	profiles := file.NewProfileStore(configDir)
	secrets := file.NewSecretStore(configDir)
	notifier := cli.Notifier()

	// Read per attempt so a changed credentials_file takes effect.
	loadProvider := func() (driven.IdentityProvider, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, err
		}
		return googleauth.NewProviderLoader(settings.Auth.CredentialsFile)()
	}

	return cli.Services{
		Auth: services.NewAuthService(
			profiles,
			loopback.NewLoopbackReceiver(),
			loopback.Browser{},
			notifier,
			loadProvider,
			settingsService,
		),
		Vault:          services.NewVaultService(secrets, profiles, notifier),
		Settings:       settingsService,
		ProfileWatcher: file.NewProfileWatcher(profiles),
	}, nil
}

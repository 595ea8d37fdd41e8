package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spatialshot/spatialshot/internal/adapters/driven/storage/memory"
	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/services"
)

// mockAuthService implements driving.AuthService for testing.
type mockAuthService struct {
	startErr  error
	result    domain.AuthResult
	profile   domain.UserProfile
	logoutErr error
	started   int
	loggedOut int
}

func (m *mockAuthService) StartAuth(_ context.Context) error {
	m.started++
	if m.startErr != nil {
		return m.startErr
	}
	if m.result.Profile != nil {
		consoleNotifier.AuthSucceeded(*m.result.Profile)
		m.profile = *m.result.Profile
	}
	consoleNotifier.AuthFinished(m.result)
	return nil
}

func (m *mockAuthService) State() domain.AuthFlowState { return domain.AuthNotRunning }

func (m *mockAuthService) Logout() error {
	m.loggedOut++
	if m.logoutErr != nil {
		return m.logoutErr
	}
	m.profile = domain.GuestProfile()
	return nil
}

func (m *mockAuthService) GetProfile() domain.UserProfile {
	if m.profile == (domain.UserProfile{}) {
		return domain.GuestProfile()
	}
	return m.profile
}

// mockProfileWatcher replays a fixed list of changes.
type mockProfileWatcher struct {
	changes []domain.UserProfile
}

func (m *mockProfileWatcher) Watch(_ context.Context, onChange func(domain.UserProfile)) error {
	for _, p := range m.changes {
		onChange(p)
	}
	return nil
}

type testServices struct {
	auth     *mockAuthService
	vault    *services.VaultService
	settings *services.SettingsService
	profiles *memory.ProfileStore
	config   *memory.ConfigStore
	watcher  *mockProfileWatcher
}

// setupServices installs test services and resets flag state.
func setupServices(t *testing.T) *testServices {
	t.Helper()

	profiles := memory.NewProfileStore()
	config := memory.NewConfigStore()
	ts := &testServices{
		auth: &mockAuthService{},
		vault: services.NewVaultService(memory.NewSecretStore(), profiles, consoleNotifier,
			services.WithPassphraseSource(func() string { return "test-machine" })),
		settings: services.NewSettingsService(config),
		profiles: profiles,
		config:   config,
		watcher:  &mockProfileWatcher{},
	}

	oldAuth, oldVault, oldSettings, oldWatcher := authService, vaultService, settingsService, profileWatcher
	oldFactory := serviceFactory
	SetServices(Services{Auth: ts.auth, Vault: ts.vault, Settings: ts.settings, ProfileWatcher: ts.watcher})
	serviceFactory = nil

	t.Cleanup(func() {
		authService, vaultService, settingsService, profileWatcher = oldAuth, oldVault, oldSettings, oldWatcher
		serviceFactory = oldFactory
		secretReveal, secretYes = false, false
		verbose, configDir = false, ""
	})
	return ts
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsShow_Defaults(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Auth]")
	assert.Contains(t, out, "Timeout: 5m0s")
	assert.Contains(t, out, "Name placeholder: (not set)")
	assert.Contains(t, out, "Credentials file: (bundled)")
	assert.Contains(t, out, "Verbose: no")
}

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, ts *testServices)
	}{
		{"timeout", "90s", func(t *testing.T, ts *testServices) {
			s, err := ts.settings.Get()
			require.NoError(t, err)
			assert.Equal(t, 90*time.Second, s.Auth.Timeout)
		}},
		{"timeout", "120", func(t *testing.T, ts *testServices) {
			assert.Equal(t, 120, ts.config.GetInt("auth.timeout_seconds"))
		}},
		{"name-placeholder", "Anonymous", func(t *testing.T, ts *testServices) {
			assert.Equal(t, "Anonymous", ts.config.GetString("auth.name_placeholder"))
		}},
		{"credentials-file", "/etc/client.json", func(t *testing.T, ts *testServices) {
			assert.Equal(t, "/etc/client.json", ts.config.GetString("auth.credentials_file"))
		}},
		{"verbose", "true", func(t *testing.T, ts *testServices) {
			assert.True(t, ts.config.GetBool("log.verbose"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			ts := setupServices(t)

			out, err := execute(t, "", "settings", "set", tt.key, tt.value)

			require.NoError(t, err)
			assert.Contains(t, out, "Set "+tt.key)
			tt.check(t, ts)
		})
	}
}

func TestSettingsSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "colour", "blue"}},
		{"bad duration", []string{"settings", "set", "timeout", "soon"}},
		{"timeout out of range", []string{"settings", "set", "timeout", "1s"}},
		{"bad bool", []string{"settings", "set", "verbose", "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupServices(t)

			_, err := execute(t, "", tt.args...)

			assert.Error(t, err)
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := parseTimeout("45")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	d, err = parseTimeout("2m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = parseTimeout("later")
	assert.Error(t, err)
}

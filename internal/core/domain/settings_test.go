package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, DefaultAuthTimeout, settings.Auth.Timeout)
	assert.Empty(t, settings.Auth.NamePlaceholder)
	assert.Empty(t, settings.Auth.CredentialsFile)
	assert.False(t, settings.Log.Verbose)
	assert.NoError(t, settings.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{name: "default", timeout: DefaultAuthTimeout},
		{name: "minimum", timeout: MinAuthTimeout},
		{name: "maximum", timeout: MaxAuthTimeout},
		{name: "too short", timeout: time.Second, wantErr: true},
		{name: "too long", timeout: 2 * time.Hour, wantErr: true},
		{name: "zero", timeout: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultAppSettings()
			settings.Auth.Timeout = tt.timeout

			err := settings.Validate()

			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

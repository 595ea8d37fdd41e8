package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassphraseFromHome(t *testing.T) {
	// sha256("/home/ada")
	got := PassphraseFromHome("/home/ada")

	assert.Len(t, got, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", got)
	assert.Equal(t, got, PassphraseFromHome("/home/ada"))
	assert.NotEqual(t, got, PassphraseFromHome("/home/grace"))
}

func TestMachinePassphrase_IsDeterministic(t *testing.T) {
	t.Setenv("HOME", "/home/ada")

	first := MachinePassphrase()
	second := MachinePassphrase()

	assert.Equal(t, first, second)
	assert.Equal(t, PassphraseFromHome("/home/ada"), first)
}

func TestMachinePassphrase_UnresolvableHomeIsFatal(t *testing.T) {
	originalHome, originalFatal := userHomeDir, fatal
	defer func() { userHomeDir, fatal = originalHome, originalFatal }()

	userHomeDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
	var fatalMsg string
	fatal = func(format string, _ ...any) { fatalMsg = format }

	got := MachinePassphrase()

	assert.Empty(t, got)
	assert.Contains(t, fatalMsg, "cannot resolve home directory")
}

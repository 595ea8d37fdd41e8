package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spatialshot/spatialshot/internal/core/domain"
	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
	"github.com/spatialshot/spatialshot/internal/logger"
)

// Ensure ConsoleNotifier implements the interface.
var _ driven.Notifier = (*ConsoleNotifier)(nil)

// ConsoleNotifier prints login events for the terminal user.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

var consoleNotifier = NewConsoleNotifier(os.Stdout)

// Notifier returns the notifier the commands print through.
func Notifier() *ConsoleNotifier {
	return consoleNotifier
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// SetOutput redirects notifications.
func (n *ConsoleNotifier) SetOutput(w io.Writer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.out = w
}

// AuthSucceeded implements driven.Notifier.
func (n *ConsoleNotifier) AuthSucceeded(profile domain.UserProfile) {
	n.printf("%s %s\n", successStyle.Render("Signed in as"), describeProfile(profile))
}

// AuthFinished implements driven.Notifier.
func (n *ConsoleNotifier) AuthFinished(result domain.AuthResult) {
	switch result.Outcome {
	case domain.AuthSucceeded:
		// AuthSucceeded already printed the profile.
	case domain.AuthDenied:
		n.printf("%s\n", errorStyle.Render("Sign-in was cancelled in the browser."))
	case domain.AuthAbandoned:
		n.printf("%s\n", errorStyle.Render("Timed out waiting for the browser."))
	default:
		n.printf("%s %v\n", errorStyle.Render("Sign-in failed:"), result.Err)
	}
}

// CloseWindow implements driven.Notifier. The terminal has no windows.
func (n *ConsoleNotifier) CloseWindow(label string) {
	logger.Debug("Close window %s", label)
}

func (n *ConsoleNotifier) printf(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.out, format, args...)
}

func describeProfile(p domain.UserProfile) string {
	switch {
	case p.Name != "" && p.Email != "":
		return fmt.Sprintf("%s <%s>", p.Name, p.Email)
	case p.Email != "":
		return p.Email
	default:
		return p.Name
	}
}

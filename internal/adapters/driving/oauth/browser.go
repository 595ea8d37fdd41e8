package oauth

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spatialshot/spatialshot/internal/core/ports/driven"
)

// Ensure Browser implements the interface.
var _ driven.BrowserOpener = Browser{}

// Browser opens URLs in the system browser.
type Browser struct{}

// Open implements driven.BrowserOpener.
func (Browser) Open(url string) error {
	return OpenBrowser(url)
}

// OpenBrowser opens the default browser to the given URL.
// The command is started but not waited for.
func OpenBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

package viewer

import (
	"os/exec"
	"runtime"
)

// openInBrowser shells out to the platform's URL-open command, matching
// the OS-switch every cross-platform CLI in this ecosystem uses since
// there's no terminal-native way to launch a browser.
func openInBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

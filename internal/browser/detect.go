// Package browser detects an installed web browser whose cookie store yt-dlp
// can read via --cookies-from-browser. Detection is best-effort: when nothing
// is found the authentication fallback is simply skipped.
package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Browsers in order of preference. Firefox first: its cookie store avoids the
// Windows DPAPI decryption issues Chrome and Edge have.
var preferred = []string{"firefox", "chrome", "edge"}

// Detect returns the first installed preferred browser, or "" when none is
// found.
func Detect() string {
	for _, name := range preferred {
		if Installed(name) {
			return name
		}
	}
	return ""
}

// Candidates returns the preference-ordered browser names, for callers that
// want to try each installed browser in turn.
func Candidates() []string {
	return append([]string(nil), preferred...)
}

// Installed reports whether the named browser is present on this machine.
func Installed(name string) bool {
	switch runtime.GOOS {
	case "darwin":
		return installedDarwin(name)
	case "windows":
		return installedWindows(name)
	default:
		return installedUnix(name)
	}
}

func installedDarwin(name string) bool {
	apps := map[string]string{
		"firefox": "/Applications/Firefox.app",
		"chrome":  "/Applications/Google Chrome.app",
		"edge":    "/Applications/Microsoft Edge.app",
	}
	app, ok := apps[name]
	if !ok {
		return false
	}
	_, err := os.Stat(app)
	return err == nil
}

func installedWindows(name string) bool {
	var candidates []string
	switch name {
	case "firefox":
		candidates = []string{
			`C:\Program Files\Mozilla Firefox\firefox.exe`,
			`C:\Program Files (x86)\Mozilla Firefox\firefox.exe`,
		}
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			candidates = append(candidates, filepath.Join(appdata, `Mozilla Firefox\firefox.exe`))
		}
	case "chrome":
		candidates = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			candidates = append(candidates, filepath.Join(appdata, `Google\Chrome\Application\chrome.exe`))
		}
	case "edge":
		candidates = []string{
			`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
			`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
		}
	default:
		return false
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return true
		}
	}

	if name == "edge" {
		if _, err := exec.LookPath("msedge.exe"); err == nil {
			return true
		}
	}
	return false
}

func installedUnix(name string) bool {
	binaries := map[string][]string{
		"firefox": {"firefox"},
		"chrome":  {"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"},
		"edge":    {"microsoft-edge", "microsoft-edge-stable"},
	}
	for _, bin := range binaries[name] {
		if _, err := exec.LookPath(bin); err == nil {
			return true
		}
	}
	return false
}

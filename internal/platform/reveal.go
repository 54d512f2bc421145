package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Commands used to reveal files per OS
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// OpenFileInManager opens the file in the system file manager and highlights
// it. When the file is gone, the containing folder is opened instead.
func OpenFileInManager(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if !FileExists(absPath) {
		return OpenFolder(filepath.Dir(absPath))
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command(OpenCommand, "-R", absPath).Run()
	case "windows":
		return exec.Command(ExplorerCommand, "/select,", strings.ReplaceAll(absPath, "/", "\\")).Run()
	case "linux":
		// File selection is not standardized on Linux; open the parent dir
		return OpenFolder(filepath.Dir(absPath))
	default:
		return unsupportedOSError()
	}
}

// OpenFolder opens a directory in the system file manager.
func OpenFolder(dir string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command(OpenCommand, dir).Run()
	case "windows":
		return exec.Command(ExplorerCommand, strings.ReplaceAll(dir, "/", "\\")).Run()
	case "linux":
		if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
			return nil
		}
		// Fallback to common file managers
		for _, fm := range []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"} {
			if _, err := exec.LookPath(fm); err == nil {
				return exec.Command(fm, dir).Run()
			}
		}
		return fmt.Errorf("no suitable file manager found")
	default:
		return unsupportedOSError()
	}
}

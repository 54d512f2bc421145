package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Extensions yt-dlp uses for in-flight artifacts
var partialExtensions = []string{".part", ".ytdl"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FileExists reports whether a regular file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// RemovePartialFiles deletes temporary artifacts left next to outputPath by
// an interrupted download (.part, .ytdl). Returns the paths actually removed.
func RemovePartialFiles(outputPath string) ([]string, error) {
	if outputPath == "" {
		return nil, nil
	}

	var removed []string
	var firstErr error
	for _, ext := range partialExtensions {
		candidate := outputPath + ext
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := os.Remove(candidate); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		removed = append(removed, candidate)
	}
	return removed, firstErr
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// unsupportedOSError is shared by the reveal helpers below.
func unsupportedOSError() error {
	return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
}

// Package validate sanitizes user-supplied URLs and destination paths before
// they reach process-spawning code. Arguments are always passed to the
// external tool as a vector, never a shell string; rejecting shell
// metacharacters here is a second line of defense against injection.
package validate

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Input limits
const (
	MaxURLLength  = 2048
	MaxPathLength = 4096
)

// Characters with special meaning in shells, rejected in URLs outside the
// query string.
const shellMetaChars = ";|&$()`<>{}[]!#"

// ValidationError describes a rejected input. It never carries partial
// normalization results.
type ValidationError struct {
	Field  string // "url" or "path"
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func urlError(reason string) error {
	return &ValidationError{Field: "url", Reason: reason}
}

func pathError(reason string) error {
	return &ValidationError{Field: "path", Reason: reason}
}

// ValidateURL checks a raw URL and returns its canonical form. Only http and
// https schemes are accepted.
func ValidateURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", urlError("URL cannot be empty")
	}

	if len(raw) > MaxURLLength {
		return "", urlError(fmt.Sprintf("URL is too long (max %d characters)", MaxURLLength))
	}

	if strings.ContainsRune(raw, 0) {
		return "", urlError("URL contains null bytes")
	}

	for _, r := range raw {
		if unicode.IsControl(r) {
			return "", urlError(fmt.Sprintf("URL contains control character %q", r))
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", urlError(fmt.Sprintf("malformed URL: %v", err))
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", urlError(fmt.Sprintf("unsupported scheme %q, only http and https are allowed", parsed.Scheme))
	}

	if parsed.Host == "" {
		return "", urlError("URL must have a host")
	}

	// Metacharacters are checked before the query string only: query values
	// may legitimately carry encoded characters.
	prefix := raw
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		prefix = raw[:idx]
	}
	if idx := strings.IndexAny(prefix, shellMetaChars); idx >= 0 {
		return "", urlError(fmt.Sprintf("URL contains forbidden character %q", prefix[idx]))
	}

	return parsed.String(), nil
}

// ValidatePath checks a raw filesystem path and returns its normalized
// absolute form. The path must stay inside the user's home directory or the
// system temp directory and must not touch OS-reserved directories. With
// allowMissing the final element may not exist yet, but its parent must.
func ValidatePath(raw string, allowMissing bool) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", pathError("path cannot be empty")
	}

	if len(raw) > MaxPathLength {
		return "", pathError(fmt.Sprintf("path is too long (max %d characters)", MaxPathLength))
	}

	if strings.ContainsRune(raw, 0) {
		return "", pathError("path contains null bytes")
	}

	if containsParentSegment(raw) {
		return "", pathError("path contains '..' which is not allowed")
	}

	if !filepath.IsAbs(raw) {
		return "", pathError("path must be absolute")
	}

	normalized, err := normalize(raw, allowMissing)
	if err != nil {
		return "", err
	}

	if err := checkAllowedRoot(normalized); err != nil {
		return "", err
	}

	if blocked := blockedDirFor(normalized); blocked != "" {
		return "", pathError(fmt.Sprintf("access to system directory %q is not allowed", blocked))
	}

	return normalized, nil
}

// ValidateOutputPath validates a download destination. The file is allowed to
// not exist yet.
func ValidateOutputPath(raw string) (string, error) {
	return ValidatePath(raw, true)
}

func containsParentSegment(raw string) bool {
	for _, seg := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '\\'
	}) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// normalize resolves symlinks via the filesystem where possible. For paths
// that may not exist yet, the parent is resolved and the final element is
// re-joined.
func normalize(raw string, allowMissing bool) (string, error) {
	cleaned := filepath.Clean(raw)

	if resolved, err := filepath.EvalSymlinks(cleaned); err == nil {
		return resolved, nil
	} else if !os.IsNotExist(err) {
		return "", pathError(fmt.Sprintf("failed to resolve path: %v", err))
	}

	if !allowMissing {
		return "", pathError(fmt.Sprintf("path does not exist: %s", cleaned))
	}

	parent := filepath.Dir(cleaned)
	resolvedParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", pathError(fmt.Sprintf("parent directory does not exist: %s", parent))
	}

	return filepath.Join(resolvedParent, filepath.Base(cleaned)), nil
}

func checkAllowedRoot(path string) error {
	if home, err := os.UserHomeDir(); err == nil && isUnder(path, home) {
		return nil
	}

	tempDir := os.TempDir()
	if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
		tempDir = resolved
	}
	if isUnder(path, tempDir) {
		return nil
	}

	return pathError("path is outside allowed directories (home or temp)")
}

func isUnder(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// blockedDirFor returns the matched OS-reserved directory fragment, or the
// empty string when the path is fine.
func blockedDirFor(path string) string {
	lower := strings.ToLower(path)

	var blocked []string
	if runtime.GOOS == "windows" {
		blocked = []string{
			"\\windows\\system32\\",
			"\\windows\\syswow64\\",
			"\\program files\\",
			"\\programdata\\",
		}
	} else {
		blocked = []string{"/etc/", "/boot/", "/sys/", "/proc/"}
	}

	for _, b := range blocked {
		if strings.Contains(lower+string(filepath.Separator), b) {
			return strings.Trim(b, "/\\")
		}
	}
	return ""
}

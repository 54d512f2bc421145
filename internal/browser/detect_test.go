package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCandidates_FirefoxFirst(t *testing.T) {
	candidates := Candidates()

	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0] != "firefox" {
		t.Errorf("Expected firefox first, got %s", candidates[0])
	}

	// Mutating the returned slice must not affect future calls.
	candidates[0] = "mutated"
	if Candidates()[0] != "firefox" {
		t.Error("Candidates() shares internal state with callers")
	}
}

func TestInstalled_UnknownBrowser(t *testing.T) {
	if Installed("netscape") {
		t.Error("Unknown browser should never report installed")
	}
}

func TestDetect_NoBrowsers(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("PATH-based detection is unix-only")
	}

	// Empty PATH: nothing can be found, Detect degrades to "".
	t.Setenv("PATH", t.TempDir())
	if got := Detect(); got != "" {
		t.Errorf("Expected no browser, got %q", got)
	}
}

func TestDetect_FindsStub(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("PATH-based detection is unix-only")
	}

	dir := t.TempDir()
	stub := filepath.Join(dir, "chromium")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	if got := Detect(); got != "chrome" {
		t.Errorf("Expected chrome (via chromium stub), got %q", got)
	}
}

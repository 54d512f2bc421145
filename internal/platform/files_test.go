package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()

	file := filepath.Join(tempDir, "exists.mp4")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("Expected FileExists to report true for an existing file")
	}

	if FileExists(filepath.Join(tempDir, "missing.mp4")) {
		t.Error("Expected FileExists to report false for a missing file")
	}

	// Directories are not files
	if FileExists(tempDir) {
		t.Error("Expected FileExists to report false for a directory")
	}
}

func TestRemovePartialFiles(t *testing.T) {
	tempDir := t.TempDir()
	output := filepath.Join(tempDir, "clip.mp4")

	partFile := output + ".part"
	ytdlFile := output + ".ytdl"
	for _, f := range []string{partFile, ytdlFile} {
		if err := os.WriteFile(f, []byte("partial"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := RemovePartialFiles(output)
	if err != nil {
		t.Fatalf("RemovePartialFiles failed: %v", err)
	}

	if len(removed) != 2 {
		t.Errorf("Expected 2 removed files, got %d", len(removed))
	}

	for _, f := range []string{partFile, ytdlFile} {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", f)
		}
	}
}

func TestRemovePartialFiles_NothingToRemove(t *testing.T) {
	output := filepath.Join(t.TempDir(), "clip.mp4")

	removed, err := RemovePartialFiles(output)
	if err != nil {
		t.Fatalf("Expected no error for missing partials, got %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("Expected no removed files, got %v", removed)
	}

	// Empty output path is a no-op
	if _, err := RemovePartialFiles(""); err != nil {
		t.Errorf("Expected no error for empty path, got %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

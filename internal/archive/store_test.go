package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ripvid/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordFillsDefaults(t *testing.T) {
	store := setupTestStore(t)

	err := store.Record(model.ArchiveEntry{
		URL:      "https://www.youtube.com/watch?v=abc123",
		Title:    "test clip",
		FilePath: "/tmp/test clip.mp4",
		Format:   "mp4",
	})
	require.NoError(t, err)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "youtube", got.Platform)
	assert.Equal(t, "test clip", got.Title)
}

func TestListNewestFirstWithFileProbe(t *testing.T) {
	store := setupTestStore(t)
	store.fileExists = func(path string) bool { return path == "/tmp/second.mp4" }

	require.NoError(t, store.Record(model.ArchiveEntry{
		ID:        "first",
		URL:       "https://www.tiktok.com/@u/video/1",
		FilePath:  "/tmp/first.mp4",
		CreatedAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, store.Record(model.ArchiveEntry{
		ID:        "second",
		URL:       "https://www.instagram.com/reel/2",
		FilePath:  "/tmp/second.mp4",
		CreatedAt: time.Now(),
	}))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "second", entries[0].ID)
	assert.True(t, entries[0].FileExists)
	assert.Equal(t, "first", entries[1].ID)
	assert.False(t, entries[1].FileExists)
}

func TestRemove(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Record(model.ArchiveEntry{
		ID:       "gone",
		URL:      "https://x.com/u/status/3",
		FilePath: "/tmp/gone.mp4",
	}))

	require.NoError(t, store.Remove("gone"))

	count, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, store.Remove("gone"), ErrNotFound)
	_, err = store.Get("gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "youtube"},
		{"https://youtu.be/abc", "youtube"},
		{"https://x.com/user/status/1", "x"},
		{"https://twitter.com/user/status/1", "x"},
		{"https://www.facebook.com/watch/?v=1", "facebook"},
		{"https://fb.watch/xyz/", "facebook"},
		{"https://www.instagram.com/reel/abc/", "instagram"},
		{"https://www.tiktok.com/@user/video/1", "tiktok"},
		{"https://vimeo.com/12345", PlatformOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectPlatform(tt.url), tt.url)
	}
}

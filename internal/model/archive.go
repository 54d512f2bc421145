package model

import (
	"time"
)

// ArchiveEntry records a previously completed download. FileExists is
// derived by probing the filesystem when entries are listed and is never
// stored.
type ArchiveEntry struct {
	ID        string `gorm:"primaryKey"`
	URL       string `gorm:"not null"`
	Platform  string `gorm:"index"`
	Title     string
	FilePath  string `gorm:"not null"`
	Format    string // "mp4" or "mp3"
	CreatedAt time.Time

	FileExists bool `gorm:"-"`
}

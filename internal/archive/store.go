// Package archive persists completed downloads so the history survives
// restarts. The core download path never touches this package; consumers
// record entries when they observe a successful completion.
package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ytget/ripvid/internal/model"
	"github.com/ytget/ripvid/internal/platform"
)

// ErrNotFound is returned when an entry id has no stored row.
var ErrNotFound = errors.New("archive entry not found")

// Store is a SQLite-backed archive of completed downloads.
type Store struct {
	db         *gorm.DB
	fileExists func(path string) bool
}

// Open opens (creating if needed) the archive database at dbPath and
// migrates the schema.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if err := db.AutoMigrate(&model.ArchiveEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
	}

	return &Store{db: db, fileExists: platform.FileExists}, nil
}

// Record inserts a completed download. A missing ID or CreatedAt is filled
// in; Platform is derived from the URL when empty.
func (s *Store) Record(entry model.ArchiveEntry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate entry id: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Platform == "" {
		entry.Platform = DetectPlatform(entry.URL)
	}
	return s.db.Create(&entry).Error
}

// List returns all entries, newest first. FileExists is recomputed for each
// entry by probing the filesystem so the UI can mark deleted files.
func (s *Store) List() ([]model.ArchiveEntry, error) {
	var entries []model.ArchiveEntry
	if err := s.db.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].FileExists = s.fileExists(entries[i].FilePath)
	}
	return entries, nil
}

// Get returns a single entry by id.
func (s *Store) Get(id string) (*model.ArchiveEntry, error) {
	var entry model.ArchiveEntry
	err := s.db.First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	entry.FileExists = s.fileExists(entry.FilePath)
	return &entry, nil
}

// Remove deletes an entry by id. The file on disk is left alone.
func (s *Store) Remove(id string) error {
	res := s.db.Delete(&model.ArchiveEntry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of archived entries.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.Model(&model.ArchiveEntry{}).Count(&count).Error
	return count, err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

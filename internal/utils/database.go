package utils

import (
	"fmt"
	"strings"

	"folio/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSearchDatabase opens the search index. The default ":memory:" DSN is
// pinned to a single connection so every query sees the same database.
func InitSearchDatabase(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open search database: %w", err)
	}

	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("search database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.IndexedPost{}); err != nil {
		return nil, fmt.Errorf("migrate search database: %w", err)
	}

	// rowid of posts_fts mirrors indexed_posts.id.
	ftsTableSQL := `
	CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
		title,
		tags,
		description,
		body
	);`
	if err := db.Exec(ftsTableSQL).Error; err != nil {
		return nil, fmt.Errorf("create fts table: %w", err)
	}

	return db, nil
}

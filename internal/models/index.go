package models

// IndexedPost is the row stored alongside the FTS5 table for search hits.
type IndexedPost struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Date        string
	Description string
	Excerpt     string
	Cover       string
	Tags        string // newline separated
	Position    int    // catalog order, used to break rank ties
}

package repository

import (
	"folio/internal/models"

	"gorm.io/gorm"
)

// IndexRepository owns the search tables. indexed_posts holds the listing
// fields of each hit; posts_fts holds the searchable text under the same
// rowid.
type IndexRepository struct {
	db *gorm.DB
}

// IndexDocument is one post as handed to Rebuild.
type IndexDocument struct {
	Post models.IndexedPost
	Body string
}

func NewIndexRepository(db *gorm.DB) *IndexRepository {
	return &IndexRepository{db: db}
}

// Rebuild replaces the whole index in one transaction, so readers see
// either the old catalog or the new one.
func (r *IndexRepository) Rebuild(docs []IndexDocument) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM posts_fts").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM indexed_posts").Error; err != nil {
			return err
		}

		for i := range docs {
			row := docs[i].Post
			row.ID = uint(i + 1)
			row.Position = i
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			query := `INSERT INTO posts_fts (rowid, title, tags, description, body) VALUES (?, ?, ?, ?, ?)`
			if err := tx.Exec(query, row.ID, row.Title, row.Tags, row.Description, docs[i].Body).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *IndexRepository) SearchPage(ftsQuery string, page, pageSize int) ([]models.IndexedPost, error) {
	var posts []models.IndexedPost
	offset := (page - 1) * pageSize
	err := r.db.Table("indexed_posts").
		Select("indexed_posts.*").
		Joins("JOIN posts_fts ON indexed_posts.id = posts_fts.rowid").
		Where("posts_fts MATCH ?", ftsQuery).
		Order("posts_fts.rank, indexed_posts.position").
		Offset(offset).Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

func (r *IndexRepository) CountByQuery(ftsQuery string) (int64, error) {
	var count int64
	subQuery := r.db.Table("posts_fts").Select("rowid").Where("posts_fts MATCH ?", ftsQuery)
	err := r.db.Model(&models.IndexedPost{}).Where("id IN (?)", subQuery).Count(&count).Error
	return count, err
}

func (r *IndexRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.IndexedPost{}).Count(&count).Error
	return count, err
}

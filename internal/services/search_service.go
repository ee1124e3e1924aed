package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"folio/internal/models"
	"folio/internal/repository"
)

var searchToken = regexp.MustCompile(`[\p{L}\p{N}]+`)

// SearchService keeps the full-text index in step with the catalog.
type SearchService struct {
	catalog *CatalogService
	index   *repository.IndexRepository
	log     *slog.Logger

	mu sync.Mutex // serialises Reindex
}

func NewSearchService(catalog *CatalogService, index *repository.IndexRepository, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{catalog: catalog, index: index, log: logger}
}

// Reindex loads the catalog and replaces the index with it.
func (s *SearchService) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	docs := make([]repository.IndexDocument, len(summaries))
	for i, sum := range summaries {
		docs[i] = repository.IndexDocument{
			Post: models.IndexedPost{
				Slug:        sum.Slug,
				Title:       sum.Title,
				Date:        sum.Date,
				Description: sum.Description,
				Excerpt:     sum.Excerpt,
				Cover:       sum.Cover,
				Tags:        strings.Join(sum.Tags, "\n"),
			},
			Body: sum.Body,
		}
	}
	if err := s.index.Rebuild(docs); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	s.log.Info("search index rebuilt", "posts", len(docs))
	return nil
}

// Search returns one page of hits for a free-text query and the total hit
// count. A query with no searchable words matches nothing.
func (s *SearchService) Search(query string, page, pageSize int) ([]models.Summary, int, error) {
	match := BuildMatchQuery(query)
	if match == "" {
		return []models.Summary{}, 0, nil
	}
	if page < 1 {
		page = 1
	}

	total, err := s.index.CountByQuery(match)
	if err != nil {
		return nil, 0, fmt.Errorf("count search hits: %w", err)
	}
	rows, err := s.index.SearchPage(match, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	hits := make([]models.Summary, len(rows))
	for i, row := range rows {
		hits[i] = summaryFromIndex(row)
	}
	return hits, int(total), nil
}

// BuildMatchQuery turns user input into an FTS5 query where every word is
// a quoted prefix term, so operators in the input are never interpreted.
func BuildMatchQuery(query string) string {
	tokens := searchToken.FindAllString(strings.ToLower(query), -1)
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = `"` + t + `"*`
	}
	return strings.Join(terms, " ")
}

func summaryFromIndex(row models.IndexedPost) models.Summary {
	tags := []string{}
	if row.Tags != "" {
		tags = strings.Split(row.Tags, "\n")
	}
	return models.Summary{
		Post: models.Post{
			Slug:        row.Slug,
			Title:       row.Title,
			Date:        row.Date,
			Description: row.Description,
			Tags:        tags,
			Cover:       row.Cover,
		},
		Excerpt: row.Excerpt,
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"folio/internal/constants"
	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/utils"

	"golang.org/x/sync/errgroup"
)

var ErrPostNotFound = errors.New("post not found")

// CatalogService builds the post catalog from a content repository. Every
// call reads the content afresh.
type CatalogService struct {
	repo  repository.ContentRepository
	limit int
	log   *slog.Logger
}

// NewCatalogService loads at most limit files at once; limit <= 0 means
// one goroutine per file.
func NewCatalogService(repo repository.ContentRepository, limit int, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{repo: repo, limit: limit, log: logger}
}

// LoadCatalog returns every post newest first. Undated posts sink to the
// bottom and ties keep discovery order. A file that fails to load is
// logged and left out. If ctx ends mid-load the partial result is dropped.
func (s *CatalogService) LoadCatalog(ctx context.Context) ([]models.Summary, error) {
	posts, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	slugs := slugSet{}
	summaries := make([]models.Summary, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		p.Slug = slugs.claim(p.Slug)
		summaries = append(summaries, newSummary(*p))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Published.After(summaries[j].Published)
	})
	return summaries, nil
}

// FindBySlug re-reads the content and returns the first post whose
// resolved or declared slug equals slug.
func (s *CatalogService) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	posts, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	slugs := slugSet{}
	for _, p := range posts {
		if p == nil {
			continue
		}
		p.Slug = slugs.claim(p.Slug)
		if p.Slug == slug || (p.DeclaredSlug != "" && p.DeclaredSlug == slug) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
}

// loadAll returns one slot per discovered entry, in discovery order; a
// nil slot is a file that could not be loaded.
func (s *CatalogService) loadAll(ctx context.Context) ([]*models.Post, error) {
	entries, err := s.repo.ListEntries(ctx, repository.PostFilter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]*models.Post, len(entries))
	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}
	for i, entry := range entries {
		g.Go(func() error {
			text, err := s.repo.LoadText(ctx, entry)
			if err != nil {
				if ctx.Err() == nil {
					s.log.Warn("skipping post", "file", entry.Name, "error", err)
				}
				return nil
			}
			meta, body := utils.ParseFrontmatter(text)
			post := NormalizePost(meta, body, entry.Name)
			posts[i] = &post
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func newSummary(post models.Post) models.Summary {
	excerpt := post.Description
	if excerpt == "" {
		excerpt = utils.GenerateExcerpt(post.Body, constants.ExcerptLength)
	}
	return models.Summary{
		Post:      post,
		Excerpt:   excerpt,
		Published: utils.SortDate(post.Date),
	}
}

// slugSet hands out unique slugs, suffixing -1, -2 and so on when a slug
// is already taken.
type slugSet map[string]bool

func (set slugSet) claim(base string) string {
	candidate := base
	for counter := 1; set[candidate]; counter++ {
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	set[candidate] = true
	return candidate
}

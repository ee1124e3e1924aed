package services

import (
	"context"
	"net/url"
	"strings"

	"folio/internal/constants"
	"folio/internal/models"
	"folio/internal/utils"
)

// CoverResolver turns a raw cover reference into a loadable URL.
type CoverResolver interface {
	Resolve(ref string) string
}

// PostService assembles the listing cards and the detail page of posts.
type PostService struct {
	catalog  *CatalogService
	resolver CoverResolver
	renderer *utils.MarkdownRenderer
}

func NewPostService(catalog *CatalogService, resolver CoverResolver) *PostService {
	return &PostService{
		catalog:  catalog,
		resolver: resolver,
		renderer: utils.NewMarkdownRenderer(resolver),
	}
}

// Cards returns one card per catalog entry in catalog order.
func (s *PostService) Cards(ctx context.Context) ([]models.Card, error) {
	summaries, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]models.Card, len(summaries))
	for i, summary := range summaries {
		cards[i] = s.Card(summary)
	}
	return cards, nil
}

// Card resolves the cover of summary and trims it down to what a listing
// card shows.
func (s *PostService) Card(summary models.Summary) models.Card {
	tags := summary.Tags
	if len(tags) > constants.MaxCardTags {
		tags = tags[:constants.MaxCardTags]
	}
	if tags == nil {
		tags = []string{}
	}
	return models.Card{
		Slug:      summary.Slug,
		Href:      PostPath(summary.Slug),
		Title:     summary.Title,
		CoverURL:  s.resolver.Resolve(summary.Cover),
		DateLabel: utils.FormatDate(summary.Date),
		Excerpt:   summary.Excerpt,
		Tags:      tags,
	}
}

// Detail finds the post for slug and renders its body. A miss is
// ErrPostNotFound.
func (s *PostService) Detail(ctx context.Context, slug string) (*models.Detail, error) {
	post, err := s.catalog.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(post.Body)
	if err != nil {
		return nil, err
	}

	cover := s.resolver.Resolve(post.Cover)
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Detail{
		Slug:             post.Slug,
		Title:            post.Title,
		Description:      post.Description,
		Author:           post.Author,
		DateLabel:        utils.FormatDate(post.Date),
		ReadingTimeLabel: readingTimeLabel(post.ReadingTime),
		Tags:             tags,
		CoverURL:         cover,
		ShowCover:        post.Cover != "" && cover != utils.Placeholder,
		Content:          content,
	}, nil
}

// PostPath is the detail route of slug.
func PostPath(slug string) string {
	return constants.WritingPath + "/" + url.PathEscape(slug)
}

func readingTimeLabel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(strings.ToLower(v), "min") {
		return v
	}
	return v + " min read"
}

package models

import (
	"html/template"
	"time"
)

// Post is one markdown file after frontmatter parsing and normalisation.
// A Post is built fresh on every load and never mutated afterwards.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Cover       string   `json:"cover"`
	Author      string   `json:"author"`
	ReadingTime string   `json:"readingTime"`
	Body        string   `json:"body"`

	// DeclaredSlug is the frontmatter slug before uniqueness was applied.
	DeclaredSlug string `json:"-"`
	// File is the content file the post was read from.
	File string `json:"-"`
}

// Summary is a catalog entry: the post plus its derived listing fields.
// The cover stays unresolved until a card is rendered.
type Summary struct {
	Post
	Excerpt   string    `json:"excerpt"`
	Published time.Time `json:"-"`
}

// Card is the view model of one listing card.
type Card struct {
	Slug      string   `json:"slug"`
	Href      string   `json:"href"`
	Title     string   `json:"title"`
	CoverURL  string   `json:"cover"`
	DateLabel string   `json:"date,omitempty"`
	Excerpt   string   `json:"excerpt"`
	Tags      []string `json:"tags"`
}

// Detail is the view model of a rendered post.
type Detail struct {
	Slug             string        `json:"slug"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Author           string        `json:"author,omitempty"`
	DateLabel        string        `json:"date,omitempty"`
	ReadingTimeLabel string        `json:"readingTime,omitempty"`
	Tags             []string      `json:"tags"`
	CoverURL         string        `json:"cover"`
	ShowCover        bool          `json:"-"`
	Content          template.HTML `json:"html"`
}

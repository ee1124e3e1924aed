package services

import (
	"path"
	"strings"

	"folio/internal/models"
	"folio/internal/utils"

	"github.com/gosimple/slug"
)

const untitledSlug = "untitled"

// NormalizePost maps parsed frontmatter and body onto a Post. It does no
// I/O; the slug it picks may still be suffixed by the catalog when another
// post already claimed it.
func NormalizePost(meta utils.Frontmatter, body, file string) models.Post {
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))

	declared := metaString(meta, "slug")
	title := metaString(meta, "title", "Title")
	if title == "" {
		title = stem
	}

	return models.Post{
		Slug:         MakeSlug(declared, stem),
		Title:        title,
		Date:         metaString(meta, "date"),
		Description:  metaString(meta, "description", "excerpt"),
		Tags:         utils.ParseTags(meta["tags"]),
		Cover:        metaString(meta, "cover"),
		Author:       metaString(meta, "author"),
		ReadingTime:  metaString(meta, "readingTime"),
		Body:         strings.TrimSpace(body),
		DeclaredSlug: declared,
		File:         file,
	}
}

// PostMetadata is the inverse of NormalizePost: the frontmatter that
// normalises back to post.
func PostMetadata(post models.Post) utils.Frontmatter {
	tags := make([]any, len(post.Tags))
	for i, t := range post.Tags {
		tags[i] = t
	}
	meta := utils.Frontmatter{
		"title":       post.Title,
		"date":        post.Date,
		"description": post.Description,
		"tags":        tags,
		"cover":       post.Cover,
		"author":      post.Author,
		"readingTime": post.ReadingTime,
	}
	if post.DeclaredSlug != "" {
		meta["slug"] = post.DeclaredSlug
	}
	return meta
}

// MakeSlug returns the first candidate that yields a URL-safe slug.
// Candidates already in slug form are kept as written.
func MakeSlug(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if slug.IsSlug(c) {
			return c
		}
		if s := slug.Make(c); s != "" {
			return s
		}
	}
	return untitledSlug
}

// metaString reads the first present key as display text.
func metaString(meta utils.Frontmatter, keys ...string) string {
	for _, k := range keys {
		if v, ok := meta[k]; ok {
			if s := utils.ScalarString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

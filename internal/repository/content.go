package repository

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrEntryNotFound = errors.New("content entry not found")
	ErrFetchFailed   = errors.New("content fetch failed")
)

// Entry is one discovered content file. Either Text is populated inline
// or Locator says where LoadText can fetch it from.
type Entry struct {
	Name    string
	Text    string
	Inline  bool
	Locator string
}

// EntryFilter decides which discovered names are posts.
type EntryFilter func(name string) bool

// PostFilter accepts markdown files whose name does not contain TEMPLATE.
func PostFilter(name string) bool {
	base := path.Base(name)
	if !strings.EqualFold(path.Ext(base), ".md") {
		return false
	}
	return !strings.Contains(base, "TEMPLATE")
}

// ContentRepository lists and reads the raw markdown the catalog is built
// from. Entries come back in lexical order of Name.
type ContentRepository interface {
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	LoadText(ctx context.Context, entry Entry) (string, error)
}

func applyFilter(entries []Entry, filter EntryFilter) []Entry {
	if filter == nil {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if filter(e.Name) {
			kept = append(kept, e)
		}
	}
	return kept
}

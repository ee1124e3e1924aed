package repository

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
)

// InlineRepository serves content that was read into memory up front, the
// way a release binary carries its embedded posts.
type InlineRepository struct {
	entries []Entry
}

func NewInlineRepository(files map[string]string) *InlineRepository {
	entries := make([]Entry, 0, len(files))
	for name, text := range files {
		entries = append(entries, Entry{Name: name, Text: text, Inline: true})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return &InlineRepository{entries: entries}
}

// InlineFromFS reads every top-level file of fsys into an InlineRepository.
func InlineFromFS(fsys fs.FS) (*InlineRepository, error) {
	dirEntries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list embedded content: %w", err)
	}
	files := make(map[string]string, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, d.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded %s: %w", d.Name(), err)
		}
		files[d.Name()] = string(data)
	}
	return NewInlineRepository(files), nil
}

func (r *InlineRepository) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return applyFilter(entries, filter), nil
}

func (r *InlineRepository) LoadText(_ context.Context, entry Entry) (string, error) {
	if entry.Inline {
		return entry.Text, nil
	}
	for _, e := range r.entries {
		if e.Name == entry.Name {
			return e.Text, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEntryNotFound, entry.Name)
}

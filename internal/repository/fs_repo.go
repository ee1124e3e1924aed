package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// FSRepository reads posts from the top level of a directory tree.
// Subdirectories (images/ and the like) are not scanned for posts.
type FSRepository struct {
	fsys fs.FS
}

func NewFSRepository(fsys fs.FS) *FSRepository {
	return &FSRepository{fsys: fsys}
}

func (r *FSRepository) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirEntries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}
		entries = append(entries, Entry{Name: d.Name(), Locator: d.Name()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return applyFilter(entries, filter), nil
}

func (r *FSRepository) LoadText(ctx context.Context, entry Entry) (string, error) {
	if entry.Inline {
		return entry.Text, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(r.fsys, entry.Locator)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrEntryNotFound, entry.Name)
		}
		return "", fmt.Errorf("%w: read %s: %v", ErrFetchFailed, entry.Name, err)
	}
	return string(data), nil
}

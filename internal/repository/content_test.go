package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestPostFilter(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"hello.md", true},
		{"UPPER.MD", true},
		{"TEMPLATE.md", false},
		{"post-TEMPLATE-draft.md", false},
		{"template.md", true},
		{"notes.txt", false},
		{"index.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostFilter(tt.name))
		})
	}
}

func TestFSRepository(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":             {Data: []byte("second")},
		"a.md":             {Data: []byte("first")},
		"TEMPLATE.md":      {Data: []byte("skip")},
		"images/cover.png": {Data: []byte("png")},
		"drafts/c.md":      {Data: []byte("nested")},
	}
	repo := NewFSRepository(fsys)
	ctx := context.Background()

	entries, err := repo.ListEntries(ctx, PostFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, entryNames(entries))

	text, err := repo.LoadText(ctx, entries[0])
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	_, err = repo.LoadText(ctx, Entry{Name: "gone.md", Locator: "gone.md"})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	all, err := repo.ListEntries(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"TEMPLATE.md", "a.md", "b.md"}, entryNames(all))
}

func TestFSRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFSRepository(fstest.MapFS{}).ListEntries(ctx, PostFilter)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInlineRepository(t *testing.T) {
	repo := NewInlineRepository(map[string]string{
		"z.md":        "last",
		"m.md":        "middle",
		"TEMPLATE.md": "skip",
	})
	ctx := context.Background()

	entries, err := repo.ListEntries(ctx, PostFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{"m.md", "z.md"}, entryNames(entries))
	assert.True(t, entries[0].Inline)

	text, err := repo.LoadText(ctx, entries[1])
	require.NoError(t, err)
	assert.Equal(t, "last", text)

	_, err = repo.LoadText(ctx, Entry{Name: "missing.md"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestInlineFromFS(t *testing.T) {
	repo, err := InlineFromFS(fstest.MapFS{
		"a.md":         {Data: []byte("alpha")},
		"images/x.png": {Data: []byte("png")},
		"TEMPLATE.md":  {Data: []byte("skip")},
	})
	require.NoError(t, err)

	entries, err := repo.ListEntries(context.Background(), PostFilter)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alpha", entries[0].Text)
}

func TestRemoteRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": [
			{"name": "b.md"},
			{"name": "a.md", "text": "inline body"},
			{"name": "TEMPLATE.md", "text": "skip"},
			{"name": "broken.md"},
			{"name": "gone.md"},
			{"name": ""}
		]}`))
	})
	mux.HandleFunc("/posts/b.md", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fetched body"))
	})
	mux.HandleFunc("/posts/broken.md", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	repo, err := NewRemoteRepository(server.URL+"/posts/index.json", 5*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	entries, err := repo.ListEntries(ctx, PostFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md", "broken.md", "gone.md"}, entryNames(entries))
	assert.True(t, entries[0].Inline)
	assert.Equal(t, server.URL+"/posts/b.md", entries[1].Locator)

	text, err := repo.LoadText(ctx, entries[0])
	require.NoError(t, err)
	assert.Equal(t, "inline body", text)

	text, err = repo.LoadText(ctx, entries[1])
	require.NoError(t, err)
	assert.Equal(t, "fetched body", text)

	_, err = repo.LoadText(ctx, entries[2])
	assert.ErrorIs(t, err, ErrFetchFailed)

	_, err = repo.LoadText(ctx, entries[3])
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestNewRemoteRepository_RejectsNonHTTP(t *testing.T) {
	_, err := NewRemoteRepository("file:///etc/index.json", time.Second)
	assert.Error(t, err)
}

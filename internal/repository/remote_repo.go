package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// RemoteRepository reads an index.json published next to the markdown
// files. Each file in the index either carries its text inline or is
// fetched relative to the index URL on demand.
//
//	{"files": [{"name": "hello.md", "text": "---\ntitle: Hi\n---\n..."}, {"name": "b.md"}]}
type RemoteRepository struct {
	indexURL *url.URL
	Client   *http.Client
}

type remoteIndex struct {
	Files []remoteFile `json:"files"`
}

type remoteFile struct {
	Name string  `json:"name"`
	Text *string `json:"text,omitempty"`
	URL  string  `json:"url,omitempty"`
}

func NewRemoteRepository(indexURL string, timeout time.Duration) (*RemoteRepository, error) {
	u, err := url.Parse(indexURL)
	if err != nil {
		return nil, fmt.Errorf("parse content index url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content index url must be http(s), got %q", indexURL)
	}
	return &RemoteRepository{
		indexURL: u,
		Client:   &http.Client{Timeout: timeout},
	}, nil
}

func (r *RemoteRepository) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	body, err := r.get(ctx, r.indexURL.String())
	if err != nil {
		return nil, err
	}

	var index remoteIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to decode content index: %w", err)
	}

	entries := make([]Entry, 0, len(index.Files))
	for _, f := range index.Files {
		if f.Name == "" {
			continue
		}
		e := Entry{Name: f.Name}
		if f.Text != nil {
			e.Text = *f.Text
			e.Inline = true
		} else {
			ref := f.URL
			if ref == "" {
				ref = url.PathEscape(f.Name)
			}
			loc, err := r.indexURL.Parse(ref)
			if err != nil {
				return nil, fmt.Errorf("bad locator for %s: %w", f.Name, err)
			}
			e.Locator = loc.String()
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return applyFilter(entries, filter), nil
}

func (r *RemoteRepository) LoadText(ctx context.Context, entry Entry) (string, error) {
	if entry.Inline {
		return entry.Text, nil
	}
	if entry.Locator == "" {
		return "", fmt.Errorf("%w: %s has no locator", ErrEntryNotFound, entry.Name)
	}
	body, err := r.get(ctx, entry.Locator)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (r *RemoteRepository) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, target)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetchFailed, target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetchFailed, target, err)
	}
	return body, nil
}

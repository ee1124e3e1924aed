// Package assets resolves cover and inline image references of posts.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"sync"

	"folio/internal/utils"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

var absoluteURLPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// IsImage reports whether ref names an image file by extension.
func IsImage(ref string) bool {
	return imageExtensions[strings.ToLower(path.Ext(ref))]
}

// Registry maps content-relative asset paths ("images/cover.png") to the
// URLs they are served from. It is swapped wholesale when content changes.
type Registry struct {
	mu     sync.RWMutex
	assets map[string]string
}

func NewRegistry(assets map[string]string) *Registry {
	r := &Registry{}
	r.Replace(assets)
	return r
}

func (r *Registry) Lookup(rel string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	url, ok := r.assets[rel]
	return url, ok
}

func (r *Registry) Replace(assets map[string]string) {
	copied := make(map[string]string, len(assets))
	for k, v := range assets {
		copied[k] = v
	}
	r.mu.Lock()
	r.assets = copied
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}

// Scan walks fsys and registers every image under urlPrefix. A missing
// root is an empty registry.
func Scan(fsys fs.FS, urlPrefix string) (map[string]string, error) {
	urlPrefix = strings.TrimRight(urlPrefix, "/")
	found := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !IsImage(p) {
			return nil
		}
		found[p] = urlPrefix + "/" + p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan content assets: %w", err)
	}
	return found, nil
}

// Resolver turns a raw reference into something a browser can load. It
// never fails; the worst case is the placeholder or a best-guess path.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	return &Resolver{registry: registry}
}

func (r *Resolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "" || ref == utils.Placeholder:
		return utils.Placeholder
	case absoluteURLPattern.MatchString(ref) || strings.HasPrefix(ref, "/"):
		return ref
	case !IsImage(ref):
		return utils.Placeholder
	}

	key := strings.TrimPrefix(ref, "./")
	if url, ok := r.registry.Lookup(key); ok {
		return url
	}
	return "/" + key
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"folio/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"hello-world.md": {Data: []byte(`---
title: "Hello, World"
date: 2024-01-15
tags: [intro, meta]
cover: ./images/hello.png
readingTime: 3
---
# Hello, World

The first post body talks about gophers.
`)},
		"second.md": {Data: []byte(`---
title: Second Thoughts
date: 2024-02-01
---
Later thoughts on writing.
`)},
		"TEMPLATE.md":      {Data: []byte("---\ntitle: Template\n---\nignored\n")},
		"images/hello.png": {Data: []byte("\x89PNG\r\n\x1a\n")},
	}
}

func serve(router *gin.Engine, method, target string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIndexRedirectsToWritings(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/writing", w.Header().Get("Location"))
}

func TestListWritingsRendersSkeletons(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/writing", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 6, strings.Count(body, "card-skeleton"))
	assert.Contains(t, body, `data-source="/api/v1/writings"`)
	assert.Contains(t, body, `class="writings-cards"`)
	assert.Contains(t, body, "<title>Test Writings</title>")
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
	assert.NotEmpty(t, w.Header().Values("Link"))
}

func TestListWritingsViewSelection(t *testing.T) {
	router := setupTestRouter(t, testContent())

	t.Run("mobile user agent defaults to list", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/writing", http.Header{
			"User-Agent": {"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile"},
		})
		assert.Contains(t, w.Body.String(), `class="writings-list"`)
	})

	t.Run("unknown view falls back to cards", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/writing?view=mosaic", nil)
		assert.Contains(t, w.Body.String(), `class="writings-cards"`)
	})

	t.Run("choice is remembered in the session", func(t *testing.T) {
		first := serve(router, http.MethodGet, "/writing?view=list", nil)
		cookie := first.Header().Get("Set-Cookie")
		require.NotEmpty(t, cookie)

		second := serve(router, http.MethodGet, "/writing", http.Header{
			"Cookie": {strings.SplitN(cookie, ";", 2)[0]},
		})
		assert.Contains(t, second.Body.String(), `class="writings-list"`)
	})
}

func TestShowPost(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/writing/hello-world", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Hello, World | Test Writings")
	assert.Contains(t, body, "The first post body talks about gophers.")
	assert.Contains(t, body, "3 min read")
	assert.Contains(t, body, `src="/writing/assets/images/hello.png"`)
}

func TestShowPostMissingSlug(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/writing/no-such-post", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no-such-post")
}

func TestServeAsset(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/writing/assets/images/hello.png", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	for _, target := range []string{
		"/writing/assets/hello-world.md",
		"/writing/assets/images/missing.png",
		"/writing/assets/../hello-world.md",
	} {
		w := serve(router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestAPIListWritings(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/api/v1/writings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []models.Card `json:"posts"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 2, resp.Total)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "second", resp.Posts[0].Slug)
	assert.Equal(t, "hello-world", resp.Posts[1].Slug)
	assert.Equal(t, "/writing/hello-world", resp.Posts[1].Href)
	assert.Equal(t, "/writing/assets/images/hello.png", resp.Posts[1].CoverURL)
	assert.Equal(t, []string{"intro", "meta"}, resp.Posts[1].Tags)
	assert.NotNil(t, resp.Posts[0].Tags)
}

func TestAPIGetWriting(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/api/v1/writings/second", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Second Thoughts", detail["title"])
	assert.Contains(t, detail["html"], "Later thoughts on writing.")

	w = serve(router, http.MethodGet, "/api/v1/writings/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"post not found"}`, w.Body.String())
}

func TestSearchPage(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/search?q=gophers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "1 post found")
	assert.Contains(t, body, `href="/writing/hello-world"`)

	w = serve(router, http.MethodGet, "/search?q=", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/writing", w.Header().Get("Location"))
}

func TestAPISearch(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/api/v1/search?q=thoughts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts    []models.Card `json:"posts"`
		Total    int           `json:"total"`
		Page     int           `json:"page"`
		PageSize int           `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "second", resp.Posts[0].Slug)

	w = serve(router, http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndNoRoute(t *testing.T) {
	router := setupTestRouter(t, testContent())

	w := serve(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = serve(router, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
}

package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"folio/internal/assets"
	"folio/internal/constants"
	"folio/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	postService *services.PostService
	contentFS   fs.FS
}

func NewBlogHandler(postService *services.PostService, contentFS fs.FS) *BlogHandler {
	return &BlogHandler{postService: postService, contentFS: contentFS}
}

func (h *BlogHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, constants.WritingPath)
}

// ListWritings renders the listing shell. The cards arrive from the JSON
// listing endpoint; until then the skeletons show.
func (h *BlogHandler) ListWritings(c *gin.Context) {
	view := h.resolveView(c)

	header := c.Writer.Header()
	header.Add("Link", `</static/css/style.css>; rel=preload; as=style`)
	header.Add("Link", `</static/js/main.js>; rel=preload; as=script`)
	header.Add("Link", `</api/v1/writings>; rel=preload; as=fetch; crossorigin`)

	render(c, http.StatusOK, "index.html", gin.H{
		"View":      view,
		"Skeletons": make([]struct{}, constants.SkeletonCount),
		"MaxTags":   constants.MaxCardTags,
		"is_index":  true,
	})
}

// resolveView picks the layout from the query, then the session, then the
// User-Agent, and remembers the result.
func (h *BlogHandler) resolveView(c *gin.Context) string {
	session := sessions.Default(c)

	view := c.Query("view")
	if view == "" {
		if stored, ok := session.Get(constants.SessionKeyView).(string); ok {
			view = stored
		}
	}
	if view == "" {
		ua := strings.ToLower(c.Request.UserAgent())
		if strings.Contains(ua, "mobile") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
			view = constants.ViewList
		} else {
			view = constants.ViewCards
		}
	}
	if view != constants.ViewList {
		view = constants.ViewCards
	}

	if session.Get(constants.SessionKeyView) != view {
		session.Set(constants.SessionKeyView, view)
		if err := session.Save(); err != nil {
			_ = c.Error(fmt.Errorf("save view preference: %w", err))
		}
	}
	c.Set(constants.ContextKeyView, view)
	return view
}

func (h *BlogHandler) ShowPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.postService.Detail(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			render(c, http.StatusNotFound, "404.html", gin.H{"slug": slug})
			return
		}
		renderError(c, err, "Failed to load this post.")
		return
	}

	render(c, http.StatusOK, "post.html", gin.H{
		"post": post,
	})
}

// ServeAsset serves images that sit next to the posts. Anything else under
// the content directory, the markdown included, is a 404.
func (h *BlogHandler) ServeAsset(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("path")), "/")
	if rel == "" || !assets.IsImage(rel) || !fs.ValidPath(rel) {
		h.NotFound(c)
		return
	}
	if _, err := fs.Stat(h.contentFS, rel); err != nil {
		h.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.FileFromFS(rel, http.FS(h.contentFS))
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"folio/internal/constants"
	"folio/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	postService *services.PostService
	search      *SearchHandler
}

func NewAPIHandler(postService *services.PostService, search *SearchHandler) *APIHandler {
	return &APIHandler{
		postService: postService,
		search:      search,
	}
}

// ListWritings returns the listing cards, newest first.
func (h *APIHandler) ListWritings(c *gin.Context) {
	cards, err := h.postService.Cards(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": cards,
		"total": len(cards),
	})
}

// GetWriting returns one post with its rendered body.
func (h *APIHandler) GetWriting(c *gin.Context) {
	post, err := h.postService.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// Search returns one page of search hits as cards.
func (h *APIHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	page := pageParam(c)
	cards, total, err := h.search.search(query, page)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     cards,
		"total":     total,
		"page":      page,
		"page_size": constants.SearchPageSize,
	})
}

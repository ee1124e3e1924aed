package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"folio/internal/constants"
	"folio/internal/models"
	"folio/internal/services"
	"folio/internal/utils"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	postService   *services.PostService
	searchService *services.SearchService
}

func NewSearchHandler(postService *services.PostService, searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{postService: postService, searchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.Redirect(http.StatusFound, constants.WritingPath)
		return
	}

	page := pageParam(c)
	cards, total, err := h.search(query, page)
	if err != nil {
		renderError(c, err, "Search failed.")
		return
	}

	totalPages := utils.TotalPages(total, constants.SearchPageSize)
	render(c, http.StatusOK, "search.html", gin.H{
		"posts":      cards,
		"query":      query,
		"total":      total,
		"Pagination": utils.GeneratePagination(page, totalPages),
	})
}

func (h *SearchHandler) search(query string, page int) ([]models.Card, int, error) {
	hits, total, err := h.searchService.Search(query, page, constants.SearchPageSize)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]models.Card, len(hits))
	for i, hit := range hits {
		cards[i] = h.postService.Card(hit)
	}
	return cards, total, nil
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"folio/internal/constants"
	"folio/internal/services"
	"folio/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	"placeholder": func() template.URL {
		return template.URL(utils.Placeholder)
	},
	// coverURL lets the inline placeholder through the URL sanitizer.
	// Every other URL is still sanitized.
	"coverURL": func(u string) any {
		if u == utils.Placeholder {
			return template.URL(u)
		}
		return u
	},
}

// NewRenderer parses every page against the shared base layout.
func NewRenderer(templatesFS fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	pages := []struct {
		name  string
		files []string
	}{
		{"index.html", []string{"base.html", "index.html"}},
		{"post.html", []string{"base.html", "post.html"}},
		{"search.html", []string{"base.html", "search.html", "_pagination.html"}},
		{"404.html", []string{"base.html", "404.html"}},
		{"error.html", []string{"base.html", "error.html"}},
	}
	for _, p := range pages {
		tpl, err := template.New(p.files[0]).Funcs(templateFuncs).ParseFS(templatesFS, p.files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p.name, err)
		}
		r.Add(p.name, tpl)
	}
	return r, nil
}

// RouterConfig carries what the router needs from main.
type RouterConfig struct {
	Posts       *services.PostService
	Search      *services.SearchService
	Renderer    multitemplate.Renderer
	Sessions    sessions.Store
	StaticFS    fs.FS
	ContentFS   fs.FS
	// AssetPrefix is where ContentFS images are served; it must match the
	// prefix the asset registry was scanned with.
	AssetPrefix string
	Site        Site
	Logger      *slog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	assetPrefix := strings.TrimRight(cfg.AssetPrefix, "/")
	if assetPrefix == "" {
		assetPrefix = constants.WritingPath + "/assets"
	}

	blogHandler := NewBlogHandler(cfg.Posts, cfg.ContentFS)
	searchHandler := NewSearchHandler(cfg.Posts, cfg.Search)
	apiHandler := NewAPIHandler(cfg.Posts, searchHandler)

	r := gin.New()
	r.HTMLRender = cfg.Renderer
	r.Use(RequestLogger(logger), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionName, cfg.Sessions))
	r.Use(SiteMiddleware(cfg.Site))

	r.StaticFS("/static", http.FS(cfg.StaticFS))

	r.GET("/", blogHandler.Index)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	writing := r.Group(constants.WritingPath)
	{
		writing.GET("", blogHandler.ListWritings)
		writing.GET("/:slug", blogHandler.ShowPost)
	}
	r.GET(assetPrefix+"/*path", blogHandler.ServeAsset)
	r.GET("/search", searchHandler.Search)

	api := r.Group("/api/v1")
	{
		api.GET("/writings", apiHandler.ListWritings)
		api.GET("/writings/:slug", apiHandler.GetWriting)
		api.GET("/search", apiHandler.Search)
	}

	r.NoRoute(blogHandler.NotFound)
	return r
}

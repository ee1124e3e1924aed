//go:build release

package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
)

//go:embed all:templates
var embedTemplatesFS embed.FS

//go:embed all:static
var embedStaticFS embed.FS

//go:embed all:content
var embedContentFS embed.FS

const embeddedContent = true

func init() {
	slog.Info("running in release mode, using embedded assets")
	var err error
	templatesFS, err = fs.Sub(embedTemplatesFS, "templates")
	if err != nil {
		slog.Error("failed to create sub filesystem for embedded templates", "error", err)
		os.Exit(1)
	}
	staticFS, err = fs.Sub(embedStaticFS, "static")
	if err != nil {
		slog.Error("failed to create sub filesystem for embedded static files", "error", err)
		os.Exit(1)
	}
}

// openContent ignores dir: a release binary serves the content it was
// built with.
func openContent(string) (fs.FS, error) {
	return fs.Sub(embedContentFS, "content")
}

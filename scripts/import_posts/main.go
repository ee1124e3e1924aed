// Command import_posts converts posts with YAML frontmatter (Hugo, Astro
// and similar generators) into folio's content directory format.
//
//	go run ./scripts/import_posts -src ~/blog/src/content/post -dst content
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/services"
	"folio/internal/utils"

	"gopkg.in/yaml.v3"
)

// sourceFrontMatter is the YAML header of an imported post.
type sourceFrontMatter struct {
	Title       string      `yaml:"title"`
	Slug        string      `yaml:"slug"`
	Description string      `yaml:"description"`
	Summary     string      `yaml:"summary"`
	PublishDate interface{} `yaml:"publishDate"` // string or time.Time
	Date        interface{} `yaml:"date"`
	Tags        []string    `yaml:"tags"`
	Cover       string      `yaml:"cover"`
	Image       string      `yaml:"image"`
	Author      string      `yaml:"author"`
	Draft       bool        `yaml:"draft"`
}

var fieldOrder = []string{"title", "slug", "date", "description", "tags", "cover", "author", "readingTime"}

func main() {
	src := flag.String("src", "", "directory of markdown files with YAML frontmatter")
	dst := flag.String("dst", "content", "folio content directory to write into")
	drafts := flag.Bool("drafts", false, "also import posts marked draft")
	flag.Parse()

	if *src == "" {
		log.Fatal("-src is required")
	}
	if err := os.MkdirAll(*dst, 0o755); err != nil {
		log.Fatalf("create %s: %v", *dst, err)
	}

	imported := 0
	err := filepath.WalkDir(*src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		ok, err := importPost(path, *dst, *drafts)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", path, err)
			return nil // continue with the next file
		}
		if ok {
			imported++
		}
		return nil
	})
	if err != nil {
		log.Fatalf("walk %s: %v", *src, err)
	}

	fmt.Printf("Imported %d posts into %s.\n", imported, *dst)
}

func importPost(path, dst string, drafts bool) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	header, body, err := splitYAML(raw)
	if err != nil {
		return false, err
	}
	var fm sourceFrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return false, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if fm.Draft && !drafts {
		return false, nil
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "index" {
		// page bundles: content/post/my-post/index.md
		stem = filepath.Base(filepath.Dir(path))
	}

	meta := utils.Frontmatter{}
	setString(meta, "title", fm.Title)
	setString(meta, "slug", fm.Slug)
	setString(meta, "date", formatDate(fm.PublishDate, fm.Date))
	setString(meta, "description", firstNonEmpty(fm.Description, fm.Summary))
	setString(meta, "cover", firstNonEmpty(fm.Cover, fm.Image))
	setString(meta, "author", fm.Author)
	if len(fm.Tags) > 0 {
		meta["tags"] = fm.Tags
	}

	name := services.MakeSlug(fm.Slug, stem) + ".md"
	out := filepath.Join(dst, name)
	if _, err := os.Stat(out); err == nil {
		return false, fmt.Errorf("%s already exists", out)
	}
	if err := os.WriteFile(out, []byte(utils.EncodeFrontmatter(meta, fieldOrder, string(body))), 0o644); err != nil {
		return false, err
	}
	fmt.Printf("  %s -> %s\n", path, out)
	return true, nil
}

// splitYAML separates a leading "---" YAML block from the body.
func splitYAML(raw []byte) ([]byte, []byte, error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, []byte("---\n")) {
		return nil, raw, nil
	}
	rest := raw[4:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	body := rest[end+4:]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return rest[:end], body, nil
}

func formatDate(values ...interface{}) string {
	for _, v := range values {
		switch d := v.(type) {
		case time.Time:
			return d.Format("2006-01-02")
		case string:
			if d = strings.TrimSpace(d); d != "" {
				return d
			}
		}
	}
	return ""
}

func setString(meta utils.Frontmatter, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		meta[key] = value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Command seed fills a directory with generated posts for load testing:
//
//	go run ./scripts/seed -dir /tmp/folio-seed -n 1000
//	FOLIO_CONTENT_DIR=/tmp/folio-seed go run .
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"folio/internal/utils"

	"github.com/gosimple/slug"
)

const content = `
# Load test post

This post was generated by the seed script to exercise the catalog loader and the search index under load.

## Markdown features

- item one
- item two
- item three

> Load testing keeps the server honest.

` + "```go" + `
package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}
` + "```" + `

<!--more-->

Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed non risus. Suspendisse lectus tortor, dignissim sit amet, adipiscing nec, ultricies sed, dolor. Cras elementum ultrices diam. Maecenas ligula massa, varius a, semper congue, euismod non, mi.

| Column | Value |
|---|---|
| a | 1 |
| b | 2 |
`

var tagPool = []string{"go", "testing", "performance", "markdown", "search", "notes", "web", "tools"}

func main() {
	dir := flag.String("dir", "content-seed", "directory to write posts into")
	total := flag.Int("n", 1000, "number of posts")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *dir, err)
	}

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= *total; i++ {
		title := fmt.Sprintf("Load Test Post %d", i)
		meta := utils.Frontmatter{
			"title": title,
			"date":  start.AddDate(0, 0, i).Format("2006-01-02"),
			"tags":  []string{tagPool[i%len(tagPool)], tagPool[(i*3)%len(tagPool)]},
		}
		body := fmt.Sprintf("This is post number %d.\n\n%s", i, content)

		path := filepath.Join(*dir, slug.Make(title)+".md")
		if err := os.WriteFile(path, []byte(utils.EncodeFrontmatter(meta, []string{"title", "date", "tags"}, body)), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		if i%100 == 0 {
			log.Printf("generated %d/%d posts", i, *total)
		}
	}
	log.Printf("generated %d posts in %s", *total, *dir)
}

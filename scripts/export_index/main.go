// Command export_index writes the index.json a remote content repository
// reads, so a content directory can be published to any static host:
//
//	go run ./scripts/export_index -dir content -out content/index.json
//
// With -inline the post text is embedded in the index and a single request
// loads the whole catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"folio/internal/repository"
)

type indexFile struct {
	Name string  `json:"name"`
	Text *string `json:"text,omitempty"`
}

func main() {
	dir := flag.String("dir", "content", "content directory")
	out := flag.String("out", "", "output file (default <dir>/index.json)")
	inline := flag.Bool("inline", false, "embed post text in the index")
	flag.Parse()

	if *out == "" {
		*out = *dir + "/index.json"
	}

	ctx := context.Background()
	repo := repository.NewFSRepository(os.DirFS(*dir))
	entries, err := repo.ListEntries(ctx, repository.PostFilter)
	if err != nil {
		log.Fatalf("list %s: %v", *dir, err)
	}

	files := make([]indexFile, 0, len(entries))
	for _, entry := range entries {
		f := indexFile{Name: entry.Name}
		if *inline {
			text, err := repo.LoadText(ctx, entry)
			if err != nil {
				log.Fatalf("read %s: %v", entry.Name, err)
			}
			f.Text = &text
		}
		files = append(files, f)
	}

	data, err := json.MarshalIndent(map[string]any{"files": files}, "", "  ")
	if err != nil {
		log.Fatalf("marshal index: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %s with %d posts.\n", *out, len(files))
}

//go:build ignore

// build.go minifies the static CSS and JS in place before a release build
// and restores the originals afterwards:
//
//	go run build.go -release
//	go build -tags release
//	go run build.go -clean
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

const (
	staticDir    = "static"
	contentDir   = "content"
	backupSuffix = ".orig"
)

var (
	m          = minify.New()
	mediaTypes = map[string]string{
		".css": "text/css",
		".js":  "text/javascript",
		".svg": "image/svg+xml",
	}
)

func init() {
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
}

func main() {
	release := flag.Bool("release", false, "Process assets for release")
	clean := flag.Bool("clean", false, "Clean processed assets and restore original files")
	flag.Parse()

	if *release && *clean {
		log.Fatal("Cannot use -release and -clean flags simultaneously.")
	}

	if *release {
		fmt.Println("Processing assets for release...")
		if err := processAssets(); err != nil {
			log.Fatalf("Failed to process assets for release: %v", err)
		}
		fmt.Println("Assets processed successfully.")
	} else if *clean {
		fmt.Println("Cleaning up processed assets...")
		if err := cleanupAssets(); err != nil {
			log.Fatalf("Failed to clean up assets: %v", err)
		}
		fmt.Println("Cleanup complete.")
	} else {
		fmt.Println("No action specified. Use -release to process assets or -clean to clean up.")
	}
}

func processAssets() error {
	for _, root := range []string{staticDir, contentDir} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			mediaType, ok := mediaTypes[filepath.Ext(path)]
			if d.IsDir() || !ok {
				return nil
			}
			return minifyFile(path, mediaType)
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// minifyFile keeps the original next to the file so -clean can restore it.
func minifyFile(path, mediaType string) error {
	backup := path + backupSuffix
	if _, err := os.Stat(backup); err == nil {
		return fmt.Errorf("%s already processed, run -clean first", path)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	minified, err := m.Bytes(mediaType, original)
	if err != nil {
		return fmt.Errorf("minify %s: %w", path, err)
	}
	if err := os.WriteFile(backup, original, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(path, minified, 0o644); err != nil {
		return err
	}
	fmt.Printf("  %s: %d -> %d bytes\n", path, len(original), len(minified))
	return nil
}

func cleanupAssets() error {
	for _, root := range []string{staticDir, contentDir} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != backupSuffix {
				return nil
			}
			target := path[:len(path)-len(backupSuffix)]
			fmt.Printf("  restoring %s\n", target)
			return os.Rename(path, target)
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

//go:build !release

package main

import (
	"io/fs"
	"log/slog"
	"os"
)

// embeddedContent reports whether posts ship inside the binary.
const embeddedContent = false

func init() {
	slog.Info("running in debug mode, using live assets from filesystem")
	templatesFS = os.DirFS("templates")
	staticFS = os.DirFS("static")
}

func openContent(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
	}
	return os.DirFS(dir), nil
}

package site

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

// FS returns an http.FileSystem rooted at the embedded static directory.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// Check reports whether the entry page was embedded.
func Check() error {
	if _, err := fs.Stat(staticFS, "static/index.html"); err != nil {
		return fmt.Errorf("%w: %w", ErrAssets, err)
	}
	return nil
}

package repository

import (
	"io/fs"
	"os"
)

// Option configures Load.
type Option func(*loader)

// WithDataDir reads data files from dir before falling back to the
// embedded copies. An empty dir keeps the embedded data.
func WithDataDir(dir string) Option {
	return func(l *loader) {
		if dir != "" {
			l.fsys = os.DirFS(dir)
			l.source = dir
		}
	}
}

// WithFS reads data files from fsys before falling back to the embedded
// copies.
func WithFS(fsys fs.FS) Option {
	return func(l *loader) {
		if fsys != nil {
			l.fsys = fsys
			l.source = "fs"
		}
	}
}

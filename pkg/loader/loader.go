// Package loader abstracts where template sources come from: a local
// directory for development, or an S3 bucket for deployments that ship
// templates separately from the binary.
package loader

import (
	"context"
	"io/fs"
	"os"

	"github.com/viewkit-dev/viewkit/internal/errors"
)

// Source loads template sources by name.
type Source interface {
	Load(ctx context.Context, name string) ([]byte, error)
}

// Dir is a Source backed by a local directory.
type Dir struct {
	fsys fs.FS
}

// NewDir creates a directory source rooted at path.
func NewDir(path string) *Dir {
	return &Dir{fsys: os.DirFS(path)}
}

// NewFS creates a source over an arbitrary file system, e.g. an embed.FS.
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Load reads the named template.
func (d *Dir) Load(_ context.Context, name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap("L001", err, name)
		}
		return nil, err
	}
	return data, nil
}

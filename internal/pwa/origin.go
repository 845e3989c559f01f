package pwa

import (
	"context"
	"io/fs"
	"mime"
	"path/filepath"
	"strings"
)

// FSOrigin serves manifest resources from the web asset directory.
// "/" resolves to index.html, like the hosted app root.
type FSOrigin struct {
	fsys fs.FS
}

func NewFSOrigin(fsys fs.FS) *FSOrigin {
	return &FSOrigin{fsys: fsys}
}

func (o *FSOrigin) Fetch(_ context.Context, path string) (*Entry, error) {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		name = "index.html"
	}

	body, err := fs.ReadFile(o.fsys, name)
	if err != nil {
		return nil, err
	}

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}

	return &Entry{Body: body, ContentType: ct}, nil
}

var _ Origin = (*FSOrigin)(nil)

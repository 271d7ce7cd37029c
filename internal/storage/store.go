package storage

import (
	"context"
	"io"
)

// FileStore persists uploaded files under a generated unique name and
// returns the path to reference them from customer records. Orphaned
// files are never cleaned up.
type FileStore interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
}

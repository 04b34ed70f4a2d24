// Package uploads stores featured images and hands back the URI persisted
// on the post record.
package uploads

import (
	"context"
	"io"
)

// ImageStore writes one uploaded image and returns the URI to reference it
// by. Implementations must fully consume r and flush/close the destination
// before returning, so the caller can safely attempt the database write
// afterwards.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

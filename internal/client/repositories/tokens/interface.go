// Package tokens persists small named values, most importantly the
// bearer token, so a session survives client restarts.
package tokens

import (
	"context"
)

type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

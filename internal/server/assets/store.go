// Package assets uploads profile images to an S3-compatible object store.
package assets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// Store accepts a byte stream and hands back a stable reference to it.
type Store interface {
	Upload(ctx context.Context, key string, body []byte) (*models.AvatarReference, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/helena-commits/badge-capture-stream/internal/core/badge"
	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// TargetResolver builds badge generator URLs for photo records.
// It never touches dispatch state; its only side effect is the signed-URL request.
type TargetResolver struct {
	signer  secondary.SignedURLProvider
	baseURL string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewTargetResolver creates a TargetResolver. signer may be nil when no
// storage backend is configured; internal paths are then passed through.
func NewTargetResolver(signer secondary.SignedURLProvider, baseURL string, ttl time.Duration, logger *zap.Logger) *TargetResolver {
	return &TargetResolver{
		signer:  signer,
		baseURL: baseURL,
		ttl:     ttl,
		logger:  logger.Named("resolver"),
	}
}

// ResolveImageURL returns a usable image URL. On signing failure it falls
// back to the unresolved reference.
func (r *TargetResolver) ResolveImageURL(ctx context.Context, imageRef string) string {
	if badge.IsDirectURL(imageRef) || r.signer == nil {
		return imageRef
	}
	signed, err := r.signer.ResolveSignedURL(ctx, imageRef, int(r.ttl.Seconds()))
	if err != nil {
		signedURLFallbackTotal.Inc()
		r.logger.Warn("signed url resolution failed, using raw reference",
			zap.String("path", imageRef),
			zap.Error(err),
		)
		return imageRef
	}
	return signed
}

// Resolve returns the badge generator URL for a record.
func (r *TargetResolver) Resolve(ctx context.Context, photo *secondary.PhotoRecord) (string, error) {
	imageURL := r.ResolveImageURL(ctx, photo.ImageRef)
	return badge.BuildURL(r.baseURL, imageURL, photo.Name, photo.Role)
}

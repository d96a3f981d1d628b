package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/campuskit/course-file-service/cache"
)

// SignedURLService issues presigned GET URLs with a cache in front, so
// repeated views of the same document within the validity window reuse one
// URL instead of re-signing. The cache TTL is the presign TTL minus a safety
// buffer: nothing the cache returns is ever served past server-side expiry.
type SignedURLService struct {
	store  ObjectStore
	cache  cache.SignedURLCache
	ttl    time.Duration
	buffer time.Duration
}

func NewSignedURLService(store ObjectStore, c cache.SignedURLCache, ttl, buffer time.Duration) *SignedURLService {
	if buffer >= ttl {
		buffer = ttl / 2
	}
	return &SignedURLService{store: store, cache: c, ttl: ttl, buffer: buffer}
}

// Generate returns a presigned GET URL for the given storage key.
func (s *SignedURLService) Generate(ctx context.Context, filePath string) (string, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return "", fmt.Errorf("%w: file path is required", ErrValidation)
	}

	if cached, ok := s.cache.Get(ctx, filePath); ok {
		return cached, nil
	}

	signed, err := s.store.PresignGet(ctx, filePath, s.ttl)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", filePath, err)
	}
	s.cache.Set(ctx, filePath, signed, s.ttl-s.buffer)
	return signed, nil
}

// ViewerURL wraps a signed URL in the Google Docs viewer for inline display.
func ViewerURL(signedURL string) string {
	return "https://docs.google.com/viewerng/viewer?url=" + url.QueryEscape(signedURL) + "&embedded=true"
}

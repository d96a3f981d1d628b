package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *recordingCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.entries[key]
	return url, ok
}

func (c *recordingCache) Set(_ context.Context, key string, url string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = url
	c.ttls[key] = ttl
}

func TestGenerateValidatesPath(t *testing.T) {
	svc := NewSignedURLService(&fakeObjectStore{}, newRecordingCache(), 15*time.Minute, time.Minute)

	for _, path := range []string{"", "   "} {
		_, err := svc.Generate(context.Background(), path)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestGeneratePresignsOnMiss(t *testing.T) {
	store := &fakeObjectStore{}
	cache := newRecordingCache()
	svc := NewSignedURLService(store, cache, 15*time.Minute, time.Minute)

	url, err := svc.Generate(context.Background(), "2024.1.CSE101-1/2024.1.CSE101-1.LAB.pdf")
	require.NoError(t, err)
	assert.Contains(t, url, "2024.1.CSE101-1.LAB.pdf")

	// cached with the presign window minus the safety buffer
	assert.Equal(t, 14*time.Minute, cache.ttls["2024.1.CSE101-1/2024.1.CSE101-1.LAB.pdf"])
}

func TestGenerateReturnsCachedURL(t *testing.T) {
	store := &fakeObjectStore{}
	cache := newRecordingCache()
	svc := NewSignedURLService(store, cache, 15*time.Minute, time.Minute)

	first, err := svc.Generate(context.Background(), "k/doc.pdf")
	require.NoError(t, err)

	second, err := svc.Generate(context.Background(), "k/doc.pdf")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.presigned, 1, "presigner must not be hit on a cache hit")
}

func TestGeneratePresignFailure(t *testing.T) {
	store := &fakeObjectStore{presignErr: errors.New("access denied")}
	svc := NewSignedURLService(store, newRecordingCache(), 15*time.Minute, time.Minute)

	_, err := svc.Generate(context.Background(), "k/doc.pdf")
	assert.Error(t, err)
}

func TestNewSignedURLServiceClampsBuffer(t *testing.T) {
	cache := newRecordingCache()
	svc := NewSignedURLService(&fakeObjectStore{}, cache, 10*time.Minute, 20*time.Minute)

	_, err := svc.Generate(context.Background(), "k/doc.pdf")
	require.NoError(t, err)

	// a buffer wider than the ttl is clamped to half the window
	assert.Equal(t, 5*time.Minute, cache.ttls["k/doc.pdf"])
}

func TestViewerURL(t *testing.T) {
	viewer := ViewerURL("https://minio.local/bucket/doc.pdf?X-Amz-Signature=abc")
	assert.Contains(t, viewer, "https://docs.google.com/viewerng/viewer?url=")
	assert.Contains(t, viewer, "embedded=true")
	assert.NotContains(t, viewer, "?X-Amz-Signature=abc", "signed url must be escaped")
}

package impl

import (
	"context"
	"sync"
	"testing"

	domainerrors "mise/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageServiceFetchesOnceThenServesMemory(t *testing.T) {
	gw := &fakeImageGateway{images: map[string][]byte{"p-1": []byte("jpeg-1")}}
	cache := newFakeImageCache()
	srv := NewImageService(gw, cache, testLogger())

	for range 3 {
		data, err := srv.ProductImage(context.Background(), "p-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("jpeg-1"), data)
	}

	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, 1, cache.puts)
}

func TestImageServiceServesPersistentTier(t *testing.T) {
	gw := &fakeImageGateway{}
	cache := newFakeImageCache()
	cache.entries["p-1"] = []byte("jpeg-cached")
	srv := NewImageService(gw, cache, testLogger())

	data, err := srv.ProductImage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-cached"), data)
	assert.Equal(t, 0, gw.calls)
}

func TestImageServiceFailureIsNotCached(t *testing.T) {
	gw := &fakeImageGateway{images: map[string][]byte{"p-1": []byte("jpeg-1")}, err: domainerrors.ErrTransport}
	cache := newFakeImageCache()
	srv := NewImageService(gw, cache, testLogger())

	_, err := srv.ProductImage(context.Background(), "p-1")
	require.Error(t, err)

	gw.mu.Lock()
	gw.err = nil
	gw.mu.Unlock()

	data, err := srv.ProductImage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-1"), data)
}

func TestImageServiceCoalescesConcurrentLookups(t *testing.T) {
	gw := &fakeImageGateway{images: map[string][]byte{"p-1": []byte("jpeg-1")}}
	cache := newFakeImageCache()
	srv := NewImageService(gw, cache, testLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := srv.ProductImage(context.Background(), "p-1")
			assert.NoError(t, err)
			assert.Equal(t, []byte("jpeg-1"), data)
		}()
	}
	wg.Wait()

	// Followers share the winner's fetch; at most a straggler that started
	// after the flight finished hits memory instead.
	assert.LessOrEqual(t, gw.calls, 2)
}

func TestImageServiceClearCache(t *testing.T) {
	gw := &fakeImageGateway{images: map[string][]byte{"p-1": []byte("jpeg-1")}}
	cache := newFakeImageCache()
	srv := NewImageService(gw, cache, testLogger())

	_, err := srv.ProductImage(context.Background(), "p-1")
	require.NoError(t, err)
	require.NoError(t, srv.ClearCache(context.Background()))

	assert.Empty(t, cache.entries)

	_, err = srv.ProductImage(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, gw.calls)
}

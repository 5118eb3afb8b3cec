package impl

import (
	"context"
	"log/slog"
	"sync"

	"mise/internal/domain/gateway"
	"mise/internal/domain/service"
	"mise/internal/usecase"
	"mise/internal/util"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// imageService implements the ImageUsecase interface. Photo bytes live in
// two tiers: a per-run memory map and the persistent cache. Concurrent
// lookups for the same product collapse into a single fetch; a failed fetch
// is not remembered, so the next request tries again.
type imageService struct {
	backend gateway.ImageGateway
	cache   service.ImageCache
	logger  *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	mem   map[string][]byte
}

// NewImageService is the constructor for imageService.
func NewImageService(
	backend gateway.ImageGateway,
	cache service.ImageCache,
	logger *slog.Logger,
) usecase.ImageUsecase {
	return &imageService{
		backend: backend,
		cache:   cache,
		logger:  logger,
		mem:     make(map[string][]byte),
	}
}

// ProductImage returns the photo bytes for a product, from cache when
// possible.
func (srv *imageService) ProductImage(ctx context.Context, productID string) ([]byte, error) {
	if data, ok := srv.fromMemory(productID); ok {
		return data, nil
	}

	result, err, _ := srv.group.Do(productID, func() (any, error) {
		// A follower that queued behind the winner may find the bytes
		// already in memory.
		if data, ok := srv.fromMemory(productID); ok {
			return data, nil
		}

		data, ok, err := srv.cache.Get(ctx, productID)
		if err != nil {
			srv.logger.Warn("image cache read failed", "productID", productID, "error", err)
		}
		if ok {
			srv.remember(productID, data)

			return data, nil
		}

		data, err = srv.backend.FetchProductImage(ctx, productID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch product image")
		}
		srv.logger.Debug("product image fetched",
			"productID", productID, "size", util.FormatBytes(int64(len(data))))
		srv.remember(productID, data)

		if err := srv.cache.Put(ctx, productID, data); err != nil {
			srv.logger.Warn("image cache write failed", "productID", productID, "error", err)
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// ClearCache drops both the in-memory and the persistent image tiers.
func (srv *imageService) ClearCache(ctx context.Context) error {
	srv.mu.Lock()
	srv.mem = make(map[string][]byte)
	srv.mu.Unlock()

	if err := srv.cache.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear image cache")
	}

	return nil
}

func (srv *imageService) fromMemory(productID string) ([]byte, bool) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	data, ok := srv.mem[productID]

	return data, ok
}

func (srv *imageService) remember(productID string, data []byte) {
	srv.mu.Lock()
	srv.mem[productID] = data
	srv.mu.Unlock()
}

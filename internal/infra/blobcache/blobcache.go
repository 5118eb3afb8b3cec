// Package blobcache implements the persistent tier of the image cache on a
// local blob bucket, so product photos survive process restarts.
package blobcache

import (
	"context"
	"io"
	"log/slog"
	"os"

	"mise/config"
	"mise/internal/domain/service"
	"mise/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// Params defines the dependencies of the image blob cache.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type imageCache struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// New opens the image cache bucket under the configured cache directory.
func New(params Params) (service.ImageCache, error) {
	dir := params.Config.ImageCacheDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create image cache directory")
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open image cache bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &imageCache{bucket: bucket, logger: params.Logger}, nil
}

// Get returns the cached bytes for the key, if present.
func (c *imageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "read cached image")
	}

	return data, true, nil
}

// Put stores the bytes under the key, replacing any previous value.
func (c *imageCache) Put(ctx context.Context, key string, data []byte) error {
	return errors.Wrap(c.bucket.WriteAll(ctx, key, data, nil), "write cached image")
}

// Clear removes every cached entry.
func (c *imageCache) Clear(ctx context.Context) error {
	iter := c.bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "list cached images")
		}
		if err := c.bucket.Delete(ctx, obj.Key); err != nil {
			// Keep going; a single stuck entry must not abort the clear.
			c.logger.Warn("failed to delete cached image", slog.String("key", obj.Key), slog.Any("error", err))
		}
	}

	return nil
}

package mesh

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Cache loads each model once per file system; concurrent requests for the same name share one load
// Failed loads are not cached
type Cache struct {
	fsys   fs.FS
	logger *zap.Logger

	mu     sync.RWMutex
	models map[uint64]*Model
	group  singleflight.Group
}

func NewCache(fsys fs.FS, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		fsys:   fsys,
		logger: logger,
		models: make(map[uint64]*Model),
	}
}

func cacheKey(name string) uint64 {
	return xxhash.Sum64String(path.Clean(name))
}

// Get returns the model for name, loading it on first use
func (c *Cache) Get(name string) (*Model, error) {
	key := cacheKey(name)

	c.mu.RLock()
	m, ok := c.models[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, shared := c.group.Do(path.Clean(name), func() (any, error) {
		m, err := LoadFS(c.fsys, path.Clean(name))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.models[key] = m
		c.mu.Unlock()
		c.logger.Debug("mesh loaded",
			zap.String("name", name),
			zap.Int("triangles", m.Triangles()),
			zap.Int("materials", len(m.Materials)))
		return m, nil
	})
	if err != nil {
		c.logger.Warn("mesh load failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	if shared {
		c.logger.Debug("mesh load shared", zap.String("name", name))
	}
	return v.(*Model), nil
}

// Len returns the number of cached models
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Forget drops a cached model
func (c *Cache) Forget(name string) {
	c.mu.Lock()
	delete(c.models, cacheKey(name))
	c.mu.Unlock()
}

// Preload loads names in parallel and returns the first failure
func Preload(ctx context.Context, c *Cache, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Get(name); err != nil {
				return fmt.Errorf("preload %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

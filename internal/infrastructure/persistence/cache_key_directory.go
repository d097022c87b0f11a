package persistence

import (
	"context"
	"fmt"
	"sort"

	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

type cacheKeyDirectory struct {
	cache  *gocache.Cache
	logger logger.Logger
}

// NewCacheKeyDirectory creates a new go-cache based KeyDirectory implementation
func NewCacheKeyDirectory(logger logger.Logger) (keys.KeyDirectory, error) {
	return &cacheKeyDirectory{
		cache:  gocache.New(gocache.NoExpiration, 0),
		logger: logger,
	}, nil
}

func (d *cacheKeyDirectory) Create(ctx context.Context, entry *keys.KeyEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	stored := *entry
	if err := d.cache.Add(entry.ID, &stored, gocache.NoExpiration); err != nil {
		return fmt.Errorf("%w: %s", keys.ErrKeyIDConflict, entry.ID)
	}

	d.logger.Info("Created directory entry with id ", entry.ID)
	return nil
}

func (d *cacheKeyDirectory) List(ctx context.Context) ([]*keys.KeyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := d.cache.Items()
	entries := make([]*keys.KeyEntry, 0, len(items))
	for _, item := range items {
		entry, ok := item.Object.(*keys.KeyEntry)
		if !ok {
			continue
		}
		clone := *entry
		entries = append(entries, &clone)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DateTimeCreated.Equal(entries[j].DateTimeCreated) {
			return entries[i].DateTimeCreated.Before(entries[j].DateTimeCreated)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

func (d *cacheKeyDirectory) GetByID(ctx context.Context, keyID string) (*keys.KeyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, found := d.cache.Get(keyID)
	if !found {
		return nil, fmt.Errorf("%w: %s", keys.ErrKeyNotFound, keyID)
	}
	entry, ok := value.(*keys.KeyEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected directory value type %T for id %s", value, keyID)
	}

	clone := *entry
	return &clone, nil
}

func (d *cacheKeyDirectory) DeleteByID(ctx context.Context, keyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, found := d.cache.Get(keyID); !found {
		return fmt.Errorf("%w: %s", keys.ErrKeyNotFound, keyID)
	}
	d.cache.Delete(keyID)

	d.logger.Info("Deleted directory entry with id ", keyID)
	return nil
}

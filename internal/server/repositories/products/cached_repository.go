package products

import (
	"context"
	"encoding/json"
	"time"

	"github.com/apetrenko/storefront/internal/server/cachex"
	"github.com/apetrenko/storefront/internal/server/models"
)

// CachedRepository is a cache-aside decorator over a Repository: reads hit
// redis first and fall back to the database, backfilling on a miss. A cache
// outage degrades to database reads, never to an error.
type CachedRepository struct {
	Next  Repository
	Cache *cachex.Redis
	TTL   time.Duration
}

func productKey(id string) string { return "product:" + id }

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	// A miss, an outage or an unreadable entry all fall through to the
	// database.
	if s, err := r.Cache.GetString(ctx, productKey(id)); err == nil {
		p := &models.Product{}
		if err := json.Unmarshal([]byte(s), p); err == nil {
			return p, nil
		}
	}

	p, err := r.Next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(p); err == nil {
		_ = r.Cache.SetString(ctx, productKey(id), string(b), r.TTL)
	}
	return p, nil
}

// Create writes through and primes the cache.
func (r *CachedRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	p, err := r.Next.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		_ = r.Cache.SetString(ctx, productKey(p.ID), string(b), r.TTL)
	}
	return p, nil
}

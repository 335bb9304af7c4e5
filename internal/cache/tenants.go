package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mobiletoilet/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

const tenantsKey = "mt:tenants"

// TenantSource loads the authoritative tenant list.
type TenantSource interface {
	List(ctx context.Context) ([]models.Tenant, error)
}

// TenantCache serves tenant metadata from Redis, loading from Source on a miss.
type TenantCache struct {
	Client *redis.Client
	Source TenantSource
	TTL    time.Duration
}

func (c TenantCache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return time.Hour
}

// List returns all tenants. Cache failures fall back to the source.
func (c TenantCache) List(ctx context.Context) ([]models.Tenant, error) {
	if c.Client != nil {
		raw, err := c.Client.Get(ctx, tenantsKey).Bytes()
		if err == nil {
			var out []models.Tenant
			if jsonErr := json.Unmarshal(raw, &out); jsonErr == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// cache down: serve from source
			return c.Source.List(ctx)
		}
	}

	tenants, err := c.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	if c.Client != nil {
		if raw, err := json.Marshal(tenants); err == nil {
			_ = c.Client.Set(ctx, tenantsKey, raw, c.ttl()).Err()
		}
	}
	return tenants, nil
}

// Find returns the tenant with the given code.
func (c TenantCache) Find(ctx context.Context, code string) (models.Tenant, bool, error) {
	tenants, err := c.List(ctx)
	if err != nil {
		return models.Tenant{}, false, err
	}
	for _, t := range tenants {
		if t.Code == code {
			return t, true, nil
		}
	}
	return models.Tenant{}, false, nil
}

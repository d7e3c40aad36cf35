package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "reports:version"

// Cache wraps Redis based caching of report output with a global
// version that order and stock mutations bump to invalidate everything
// at once. A nil Cache (or nil client) degrades to pass-through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err == redis.Nil {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	if c == nil || c.client == nil {
		return strings.Join(parts, ":"), nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", strings.Join(parts, ":"), ver), nil
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates all cached reports by incrementing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

func tenantToken(tenantID int64) string {
	return strconv.FormatInt(tenantID, 10)
}

func rangeToken(rng DateRange) string {
	from, to := "-", "-"
	if rng.From != nil {
		from = rng.From.UTC().Format(time.RFC3339)
	}
	if rng.To != nil {
		to = rng.To.UTC().Format(time.RFC3339)
	}
	return from + ".." + to
}

func optInt64Token(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optStringToken(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func keyProductSales(tenantID int64, f ProductSalesFilter) []string {
	return []string{
		"reports", "product", tenantToken(tenantID), string(f.Frequency),
		rangeToken(f.Range), optInt64Token(f.ProductID),
		optStringToken(f.Category), optStringToken(f.Brand),
	}
}

func keyCustomerSales(tenantID int64, f CustomerSalesFilter) []string {
	return []string{
		"reports", "customer", tenantToken(tenantID), string(f.Frequency),
		rangeToken(f.Range), optInt64Token(f.CustomerID),
	}
}

func keyOrderAnalytics(tenantID int64, f OrderAnalyticsFilter) []string {
	return []string{
		"reports", "orders", tenantToken(tenantID), string(f.Frequency),
		rangeToken(f.Range),
	}
}

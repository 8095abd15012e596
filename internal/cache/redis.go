package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const searchDateLayout = "2006-01-02"

// RedisCache caches catalog reads: the airport list and flight search
// results. Search entries embed seat counts, so every seat change must
// call InvalidateFlight.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg utils.RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    cfg.CacheTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]*entity.Airport, bool, error) {
	var airports []*entity.Airport
	hit, err := c.get(ctx, airportsKey(), &airports)
	return airports, hit, err
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []*entity.Airport) error {
	return c.set(ctx, airportsKey(), airports)
}

func (c *RedisCache) GetFlightSearch(ctx context.Context, from, to, date string) ([]*entity.FlightDetail, bool, error) {
	var flights []*entity.FlightDetail
	hit, err := c.get(ctx, searchKey(from, to, date), &flights)
	return flights, hit, err
}

func (c *RedisCache) SetFlightSearch(ctx context.Context, from, to, date string, flights []*entity.FlightDetail) error {
	return c.set(ctx, searchKey(from, to, date), flights)
}

// InvalidateFlight drops every search entry that can contain f. A search
// for day D covers departures from D-1 through D+1.
func (c *RedisCache) InvalidateFlight(ctx context.Context, f *entity.Flight) error {
	day := f.DepartureTime.UTC()
	keys := []string{
		searchKey(f.DepartureAirportCode, f.ArrivalAirportCode, day.AddDate(0, 0, -1).Format(searchDateLayout)),
		searchKey(f.DepartureAirportCode, f.ArrivalAirportCode, day.Format(searchDateLayout)),
		searchKey(f.DepartureAirportCode, f.ArrivalAirportCode, day.AddDate(0, 0, 1).Format(searchDateLayout)),
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func airportsKey() string {
	return "cache:airports"
}

func searchKey(from, to, date string) string {
	return fmt.Sprintf("cache:flights:%s:%s:%s", from, to, date)
}

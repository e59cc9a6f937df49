package redisstore

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/adapters/out/postgres/settingsrepo"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	SettingsKey = "settings:public"

	// DefaultSettingsTTL bounds how stale a copy can get if an invalidation is lost.
	DefaultSettingsTTL = 10 * time.Minute
)

// SettingsCache stores the settings document in the same JSON encoding the
// database uses.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSettingsCache(client *redis.Client, ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = DefaultSettingsTTL
	}
	return &SettingsCache{client: client, ttl: ttl}
}

func (c *SettingsCache) Get(ctx context.Context) (settings.Settings, error) {
	raw, err := c.client.Get(ctx, SettingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return settings.Settings{}, errs.NewObjectNotFoundError("settings", SettingsKey)
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return settingsrepo.Unmarshal(raw)
}

func (c *SettingsCache) Set(ctx context.Context, s settings.Settings) error {
	raw, err := settingsrepo.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, SettingsKey, raw, c.ttl).Err()
}

func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, SettingsKey).Err()
}

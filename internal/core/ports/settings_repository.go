package ports

import (
	"context"

	"roboshop/internal/core/domain/model/settings"
)

// SettingsRepository stores the settings singleton.
type SettingsRepository interface {
	// Get returns the stored settings, or settings.Default() when none were saved yet.
	Get(ctx context.Context) (settings.Settings, error)

	Save(ctx context.Context, s settings.Settings) error
}

// SettingsCache keeps the public settings close to the storefront.
type SettingsCache interface {
	// Get returns errs.ErrObjectNotFound on a cache miss.
	Get(ctx context.Context) (settings.Settings, error)
	Set(ctx context.Context, s settings.Settings) error
	Invalidate(ctx context.Context) error
}

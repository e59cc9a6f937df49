package queries

import (
	"context"
	"errors"
	"log/slog"

	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/errs"
	"roboshop/internal/pkg/guard"
)

var ErrGetSettingsQueryIsNotConstructed = errors.New(
	"GetSettingsQuery must be created via NewGetSettingsQuery constructor",
)

// GetSettingsQuery is public; the storefront reads it on every page.
type GetSettingsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSettingsQuery() GetSettingsQuery {
	return GetSettingsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSettingsQuery) Validate() error {
	return q.guard.Validate(ErrGetSettingsQueryIsNotConstructed)
}

// GetSettingsQueryHandler reads through the cache. Cache failures only cost a
// database read and are logged.
type GetSettingsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	cache      ports.SettingsCache
	logger     *slog.Logger
}

func NewGetSettingsQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	cache ports.SettingsCache,
	logger *slog.Logger,
) GetSettingsQueryHandler {
	return GetSettingsQueryHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "settings"),
	}
}

func (h GetSettingsQueryHandler) Handle(ctx context.Context, query GetSettingsQuery) (settings.Settings, error) {
	if err := query.Validate(); err != nil {
		return settings.Settings{}, err
	}

	cached, err := h.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "Failed to read settings cache", "error", err)
	}

	s, err := h.uowFactory.Create().SettingsRepository().Get(ctx)
	if err != nil {
		return settings.Settings{}, err
	}

	if err = h.cache.Set(ctx, s); err != nil {
		h.logger.WarnContext(ctx, "Failed to cache settings", "error", err)
	}
	return s, nil
}

package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/ports"
)

// UpdateSettingsCommandHandler saves the settings and drops the cached copy so
// the storefront picks the change up on its next read.
type UpdateSettingsCommandHandler struct {
	uowFactory SettingsUoWFactory
	cache      ports.SettingsCache
	audit      AuditTrail
	logger     *slog.Logger
}

func NewUpdateSettingsCommandHandler(
	uowFactory SettingsUoWFactory,
	cache ports.SettingsCache,
	audit AuditTrail,
	logger *slog.Logger,
) UpdateSettingsCommandHandler {
	return UpdateSettingsCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		audit:      audit,
		logger:     logger.With("component", "settings"),
	}
}

func (h UpdateSettingsCommandHandler) Handle(ctx context.Context, command UpdateSettingsCommand) (settings.Settings, error) {
	if err := command.Validate(); err != nil {
		return settings.Settings{}, err
	}

	updated := command.Settings()
	updatedBy := command.Actor().ID
	updated.UpdatedAt = time.Now().UTC()
	updated.UpdatedBy = &updatedBy

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return settings.Settings{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SettingsRepository().Save(ctx, updated); err != nil {
		return settings.Settings{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return settings.Settings{}, err
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.WarnContext(ctx, "Failed to invalidate settings cache", "error", err)
	}

	h.audit.Record(ctx, command.Actor(), "settings.update", audit.EntitySettings, "", map[string]string{
		"store_name":         updated.Branding.StoreName,
		"tax_rate_bps":       strconv.Itoa(updated.Commerce.TaxRateBps),
		"auto_assign_riders": strconv.FormatBool(updated.Commerce.AutoAssignRiders),
	})
	return updated, nil
}

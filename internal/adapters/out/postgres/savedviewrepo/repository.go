// Package savedviewrepo persists the named dashboard filters users save.
package savedviewrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/savedview"
	"roboshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedViewDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_views_owner_scope_name"`
	Scope     string    `gorm:"not null;uniqueIndex:idx_saved_views_owner_scope_name"`
	Name      string    `gorm:"not null;uniqueIndex:idx_saved_views_owner_scope_name"`
	Filters   []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (SavedViewDTO) TableName() string {
	return "saved_views"
}

type GormSavedViewRepository struct {
	db *gorm.DB
}

func NewGormSavedViewRepository(db *gorm.DB) *GormSavedViewRepository {
	return &GormSavedViewRepository{db: db}
}

func (r *GormSavedViewRepository) Add(ctx context.Context, view *savedview.SavedView) error {
	if err := view.Validate(); err != nil {
		return err
	}

	filters, err := json.Marshal(view.Filters())
	if err != nil {
		return err
	}
	dto := SavedViewDTO{
		ID:        view.ID().Bytes(),
		OwnerID:   view.OwnerID().Bytes(),
		Scope:     string(view.Scope()),
		Name:      view.Name(),
		Filters:   filters,
		CreatedAt: view.CreatedAt(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewAlreadyExistsError("name", view.Name())
	}
	return nil
}

func (r *GormSavedViewRepository) Delete(ctx context.Context, ownerID, id kernel.UUID) error {
	if err := errors.Join(ownerID.Validate(), id.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id.Bytes(), ownerID.Bytes()).
		Delete(&SavedViewDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("view", id.String())
	}
	return nil
}

func (r *GormSavedViewRepository) ListByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	scope savedview.Scope,
) ([]*savedview.SavedView, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Where("owner_id = ?", ownerID.Bytes())
	if scope != "" {
		db = db.Where("scope = ?", string(scope))
	}
	var dtos []SavedViewDTO
	if err := db.Order("scope, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	views := make([]*savedview.SavedView, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toDomain(dto SavedViewDTO) (*savedview.SavedView, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	var filters map[string]string
	if err = json.Unmarshal(dto.Filters, &filters); err != nil {
		return nil, err
	}
	return savedview.NewSavedView(id, ownerID, savedview.Scope(dto.Scope), dto.Name, filters, dto.CreatedAt)
}

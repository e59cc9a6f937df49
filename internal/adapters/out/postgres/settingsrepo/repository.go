package settingsrepo

import (
	"context"
	"errors"
	"time"

	"roboshop/internal/core/domain/model/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// singletonID is the only row of the settings table.
const singletonID = 1

type SettingsDTO struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Data      []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (SettingsDTO) TableName() string {
	return "settings"
}

type GormSettingsRepository struct {
	db *gorm.DB
}

func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	var dto SettingsDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.Default(), nil
		}
		return settings.Settings{}, err
	}

	return Unmarshal(dto.Data)
}

func (r *GormSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	raw, err := Marshal(s)
	if err != nil {
		return err
	}

	dto := SettingsDTO{ID: singletonID, Data: raw, UpdatedAt: s.UpdatedAt}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&dto).Error
}

package userrepo

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		db: db,
	}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("email", aggregate.Email())
		}
		return err
	}

	return nil
}

// Update rewrites the account row and replaces the address list.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&UserDTO{}).Where("id = ?", dto.ID).
		Select("name", "phone", "role", "active").
		Updates(map[string]any{"name": dto.Name, "phone": dto.Phone, "role": dto.Role, "active": dto.Active})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}

	if err := db.Where("user_id = ?", dto.ID).Delete(&AddressDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Addresses) > 0 {
		if err := db.Create(&dto.Addresses).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "user", id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	return r.first(ctx, "user", email, "email = ?", email)
}

func (r *GormUserRepository) first(ctx context.Context, param, key string, cond string, args ...any) (*user.User, error) {
	var dto UserDTO
	err := r.db.WithContext(ctx).
		Preload("Addresses", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where(cond, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}

	return toDomain(dto)
}

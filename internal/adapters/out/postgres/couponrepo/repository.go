package couponrepo

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewAlreadyExistsError("code", dto.Code)
	}
	return nil
}

func (r *GormCouponRepository) Update(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CouponDTO{}).Where("code = ?", dto.Code).
		Updates(map[string]any{
			"used_count": dto.UsedCount,
			"active":     dto.Active,
			"max_uses":   dto.MaxUses,
			"expires_at": dto.ExpiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("coupon", dto.Code)
	}
	return nil
}

// Get locks the coupon row so concurrent checkouts count uses correctly.
func (r *GormCouponRepository) Get(ctx context.Context, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)

	var dto CouponDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", code)
		}
		return nil, err
	}

	return ToDomain(dto)
}

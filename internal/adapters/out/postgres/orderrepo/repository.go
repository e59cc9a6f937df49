package orderrepo

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db: db,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update writes the mutable columns only when the stored version still matches the
// version the aggregate was loaded at, then appends the history entries recorded
// since loading.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	changes := aggregate.Changes()
	if len(changes) == 0 {
		return nil
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":         dto.Status,
			"rider_id":       dto.RiderID,
			"payment_status": dto.PaymentStatus,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order")
	}

	history := aggregate.History()
	offset := len(history) - len(changes)
	fresh := historyFromDomain(dto.ID, history[offset:], offset)
	if err := db.Create(&fresh).Error; err != nil {
		return err
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

// GetOldestPacked locks the order so two dispatch runs never pick the same one.
func (r *GormOrderRepository) GetOldestPacked(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", int(order.Packed)).
		Order("updated_at, created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "oldest packed")
		}
		return nil, err
	}

	return r.hydrate(ctx, dto)
}

func (r *GormOrderRepository) GetRiderLoads(ctx context.Context) ([]services.RiderLoad, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, COUNT(o.id)
		FROM users u
		LEFT JOIN orders o ON o.rider_id = u.id AND o.status IN (?, ?)
		WHERE u.role = ? AND u.active
		GROUP BY u.id, u.created_at
		ORDER BY u.created_at, u.id
	`, int(order.Assigned), int(order.Shipped), user.Rider.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]services.RiderLoad, 0)
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err = rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		loads = append(loads, services.RiderLoad{RiderID: riderID, ActiveOrders: count})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}

func (r *GormOrderRepository) hydrate(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", dto.ID).Order("seq").Find(&dto.History).Error; err != nil {
		return nil, err
	}
	return ToDomain(dto)
}

package issuerepo

import (
	"context"
	"errors"

	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormIssueRepository struct {
	db *gorm.DB
}

func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{
		db: db,
	}
}

func (r *GormIssueRepository) Add(ctx context.Context, aggregate *issue.Issue) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update writes the status and appends the messages the table does not hold yet.
func (r *GormIssueRepository) Update(ctx context.Context, aggregate *issue.Issue) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&IssueDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "updated_at": dto.UpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("issue", aggregate.ID().String())
	}

	var stored int64
	if err := db.Model(&MessageDTO{}).Where("issue_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}
	if int(stored) < len(dto.Messages) {
		fresh := dto.Messages[stored:]
		if err := db.Create(&fresh).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormIssueRepository) Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	return r.get(ctx, id, r.db)
}

func (r *GormIssueRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	return r.get(ctx, id, r.db.Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormIssueRepository) get(ctx context.Context, id kernel.UUID, db *gorm.DB) (*issue.Issue, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IssueDTO
	err := db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("issue", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

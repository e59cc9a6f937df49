// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"roboshop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	IssueRepoFactory interface {
		IssueRepository() ports.IssueRepository
	}

	CouponRepoFactory interface {
		CouponRepository() ports.CouponRepository
	}

	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	SavedViewRepoFactory interface {
		SavedViewRepository() ports.SavedViewRepository
	}

	// UserUoW covers account and address changes.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// CatalogUoW covers product changes.
	CatalogUoW interface {
		TxManager
		ProductRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// OrderUoW covers status transitions: the order, the products restocked on
	// cancellation and the rider being assigned.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		UserRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW covers automatic rider assignment.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		SettingsRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// CheckoutUoW spans every aggregate a purchase touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   products, err := uow.ProductRepository().GetManyForUpdate(ctx, ids)
	//   // ... decrement stock, redeem coupon, price, add order
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		UserRepoFactory
		CouponRepoFactory
		SettingsRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// IssueUoW covers support tickets and the order they refer to.
	IssueUoW interface {
		TxManager
		IssueRepoFactory
		OrderRepoFactory
	}

	IssueUoWFactory interface {
		Create() IssueUoW
	}

	CouponUoW interface {
		TxManager
		CouponRepoFactory
	}

	CouponUoWFactory interface {
		Create() CouponUoW
	}

	SettingsUoW interface {
		TxManager
		SettingsRepoFactory
	}

	SettingsUoWFactory interface {
		Create() SettingsUoW
	}

	SavedViewUoW interface {
		TxManager
		SavedViewRepoFactory
	}

	SavedViewUoWFactory interface {
		Create() SavedViewUoW
	}
)

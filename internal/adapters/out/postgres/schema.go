package postgres

import (
	"fmt"

	"roboshop/internal/adapters/out/postgres/couponrepo"
	"roboshop/internal/adapters/out/postgres/issuerepo"
	"roboshop/internal/adapters/out/postgres/orderrepo"
	"roboshop/internal/adapters/out/postgres/productrepo"
	"roboshop/internal/adapters/out/postgres/savedviewrepo"
	"roboshop/internal/adapters/out/postgres/settingsrepo"
	"roboshop/internal/adapters/out/postgres/userrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the connection string from its parts.
func DSN(host, port, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects with unique violations translated to gorm.ErrDuplicatedKey,
// which the repositories rely on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
}

// Models lists every table the service owns, parents before children.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&userrepo.AddressDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&issuerepo.IssueDTO{},
		&issuerepo.MessageDTO{},
		&couponrepo.CouponDTO{},
		&settingsrepo.SettingsDTO{},
		&savedviewrepo.SavedViewDTO{},
	}
}

// Migrate creates or alters the tables to match the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Truncate empties every table. Used by integration tests between cases.
func Truncate(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE users, addresses, products, orders, order_items, order_history,
		issues, issue_messages, coupons, settings, saved_views CASCADE`).Error
}

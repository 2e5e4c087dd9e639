package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/config"
	"github.com/vaishnavicode/rentagora/internal/models"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserRole{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductPrice{},
		&models.Status{},
		&models.InvoiceType{},
		&models.Payment{},
		&models.Order{},
		&models.CartItem{},
		&models.Delivery{},
		&models.ProductLike{},
		&models.Wishlist{},
		&models.Notification{},
		&models.UserAccessToken{},
	)
}

// Seed fills the lookup tables the services resolve by name. Safe to run
// on every start.
func Seed(db *gorm.DB) error {
	for _, name := range []string{"vendor", "customer"} {
		role := models.UserRole{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	statuses := []string{
		"placed", "confirmed", "cancelled", "completed",
		"returned", "picked_up", "rescheduled",
	}
	for _, name := range statuses {
		status := models.Status{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"standard", "proforma"} {
		it := models.InvoiceType{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&it).Error; err != nil {
			return err
		}
	}

	general := models.Category{Name: "General"}
	return db.Where("name = ?", general.Name).FirstOrCreate(&general).Error
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/hash"
	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/repo"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	err = db.AutoMigrate(
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
	require.NoError(t, err, "failed to migrate tables")

	seedLookups(t, db)
	return db
}

func seedLookups(t *testing.T, db *gorm.DB) {
	t.Helper()

	for _, name := range []string{"vendor", "customer"} {
		require.NoError(t, db.Create(&models.UserRole{Name: name}).Error)
	}
	statuses := []string{
		"placed", "confirmed", "cancelled", "completed",
		"returned", "picked_up", "rescheduled",
	}
	for _, name := range statuses {
		require.NoError(t, db.Create(&models.Status{Name: name}).Error)
	}
	for _, name := range []string{"standard", "proforma"} {
		require.NoError(t, db.Create(&models.InvoiceType{Name: name}).Error)
	}
	require.NoError(t, db.Create(&models.Category{Name: "General"}).Error)
}

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Auth    *AuthService
	Catalog *CatalogService
	Cart    *CartService
	Orders  *OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := initTestDB(t)
	r := repo.New(db)
	producer := mykafka.NewProducer(nil)

	orders := &OrderService{Repo: r, Producer: producer}
	require.NoError(t, orders.LoadLookups(context.Background()))

	return &testEnv{
		DB:      db,
		Repo:    r,
		Auth:    &AuthService{Repo: r, JWTSecret: []byte("test-jwt-secret"), Producer: producer},
		Catalog: &CatalogService{Repo: r, Producer: producer},
		Cart:    &CartService{Repo: r},
		Orders:  orders,
	}
}

func (env *testEnv) createUser(t *testing.T, email, role, address string) *models.User {
	t.Helper()

	var roleRow models.UserRole
	require.NoError(t, env.DB.Where("name = ?", role).First(&roleRow).Error)

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Address:      address,
		PasswordHash: pwHash,
		RoleID:       roleRow.ID,
		Active:       true,
	}
	require.NoError(t, env.DB.Create(user).Error)
	user.Role = roleRow
	return user
}

func (env *testEnv) createProduct(t *testing.T, owner *models.User) *models.Product {
	t.Helper()

	var category models.Category
	require.NoError(t, env.DB.First(&category).Error)

	product := &models.Product{
		Name:        "Camera",
		Description: "A mirrorless camera",
		Qty:         3,
		CategoryID:  category.ID,
		CreatedByID: owner.ID,
		Active:      true,
	}
	require.NoError(t, env.DB.Create(product).Error)
	return product
}

func (env *testEnv) addPrice(t *testing.T, productID uint, tier string, amount int) {
	t.Helper()
	require.NoError(t, env.DB.Create(&models.ProductPrice{
		ProductID:    productID,
		Price:        amount,
		TimeDuration: tier,
		Active:       true,
	}).Error)
}

func window(hours int) (time.Time, time.Time) {
	from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return from, from.Add(time.Duration(hours) * time.Hour)
}

// Package testutil builds seeded in-memory databases and fixtures for tests.
package testutil

import (
	"testing"

	"github.com/Kariqs/kopi-api/initializers"
	"github.com/Kariqs/kopi-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestPassword = "password123"

// NewDB opens a private in-memory SQLite database, migrates every model and
// seeds the reference data. The pool holds a single connection, so
// concurrent transactions run one after another.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db))
	require.NoError(t, initializers.SeedReferenceData(db))
	return db
}

func UintPtr(v uint) *uint { return &v }

// CreateUser inserts a customer with a profile. Empty fullName and address
// leave the profile incomplete.
func CreateUser(t *testing.T, db *gorm.DB, email, fullName, address string) *models.User {
	t.Helper()
	return createUser(t, db, email, fullName, address, models.RoleCustomer)
}

func CreateAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, "Admin", "", models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email, fullName, address, role string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		Profile:  &models.UserProfile{FullName: fullName, Address: address},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProduct inserts an active product in the first seeded category.
func CreateProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		CategoryID: 1,
		Price:      price,
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func AddCartLine(t *testing.T, db *gorm.DB, userID, productID uint, quantity int, sizeID, temperatureID *uint) *models.CartItem {
	t.Helper()
	line := &models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		SizeID:        sizeID,
		TemperatureID: temperatureID,
	}
	require.NoError(t, db.Omit("Product", "Size", "Temperature").Create(line).Error)
	return line
}

func ProductStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.Unscoped().First(&product, productID).Error)
	return product.Stock
}

func CountRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

package initializers

import (
	"log"

	"github.com/Kariqs/kopi-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{}, &models.UserProfile{},
		&models.Category{}, &models.ProductSize{}, &models.ProductTemperature{},
		&models.Product{}, &models.ProductImage{},
		&models.CartItem{},
		&models.OrderStatus{}, &models.DeliveryMethod{}, &models.PaymentMethod{}, &models.TaxRate{},
		&models.Order{}, &models.OrderItem{},
		&models.Promo{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}

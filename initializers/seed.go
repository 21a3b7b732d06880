package initializers

import (
	"log"
	"strings"

	"github.com/Kariqs/kopi-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedReferenceData inserts the lookup rows checkout depends on. Existing
// rows are left untouched, so it is safe to run on every start.
func SeedReferenceData(db *gorm.DB) error {
	statuses := []models.OrderStatus{
		{ID: 1, Name: models.StatusPending, DisplayName: "Pending", Description: "Order is waiting for confirmation", DisplayOrder: 1, IsActive: true},
		{ID: 2, Name: models.StatusOnProgress, DisplayName: "On Progress", Description: "Order is being prepared", DisplayOrder: 2, IsActive: true},
		{ID: 3, Name: models.StatusSendingGoods, DisplayName: "Sending Goods", Description: "Order is being delivered", DisplayOrder: 3, IsActive: true},
		{ID: 4, Name: models.StatusFinishOrder, DisplayName: "Finish Order", Description: "Order has been completed", DisplayOrder: 4, IsActive: true},
		{ID: 5, Name: models.StatusCancelled, DisplayName: "Cancelled", Description: "Order has been cancelled", DisplayOrder: 5, IsActive: true},
	}
	for i := range statuses {
		if err := db.FirstOrCreate(&statuses[i], models.OrderStatus{ID: statuses[i].ID}).Error; err != nil {
			return err
		}
	}

	deliveries := []models.DeliveryMethod{
		{ID: 1, Name: "Dine In", BaseFee: 0, Description: "Order food to eat on the spot", IsActive: true},
		{ID: 2, Name: "Door Delivery", BaseFee: 10000, Description: "Delivery within 30-45 minutes", IsActive: true},
		{ID: 3, Name: "Pick Up", BaseFee: 0, Description: "Pick up at store location", IsActive: true},
	}
	for i := range deliveries {
		if err := db.FirstOrCreate(&deliveries[i], models.DeliveryMethod{ID: deliveries[i].ID}).Error; err != nil {
			return err
		}
	}

	payments := []models.PaymentMethod{
		{ID: 1, Name: "Bank BRI", Description: "Transfer via Bank BRI", IsActive: true},
		{ID: 2, Name: "DANA", Description: "Pay with DANA e-wallet", IsActive: true},
		{ID: 3, Name: "BCA", Description: "Transfer via Bank BCA", IsActive: true},
		{ID: 4, Name: "GoPay", Description: "Pay with GoPay e-wallet", IsActive: true},
		{ID: 5, Name: "OVO", Description: "Pay with OVO e-wallet", IsActive: true},
		{ID: 6, Name: "PayPal", Description: "Pay with PayPal", IsActive: true},
		{ID: 7, Name: "Cash on Delivery", Description: "Pay when the order arrives", IsActive: true},
	}
	for i := range payments {
		if err := db.FirstOrCreate(&payments[i], models.PaymentMethod{ID: payments[i].ID}).Error; err != nil {
			return err
		}
	}

	taxes := []models.TaxRate{
		{ID: 1, Name: "PPN 10%", RatePercentage: 10, IsActive: true},
		{ID: 2, Name: "Service Charge 5%", RatePercentage: 5, IsActive: true},
	}
	for i := range taxes {
		if err := db.FirstOrCreate(&taxes[i], models.TaxRate{ID: taxes[i].ID}).Error; err != nil {
			return err
		}
	}

	sizes := []models.ProductSize{
		{ID: 1, Name: "Regular", PriceAdjustment: 0, IsActive: true},
		{ID: 2, Name: "Medium", PriceAdjustment: 5000, IsActive: true},
		{ID: 3, Name: "Large", PriceAdjustment: 10000, IsActive: true},
	}
	for i := range sizes {
		if err := db.FirstOrCreate(&sizes[i], models.ProductSize{ID: sizes[i].ID}).Error; err != nil {
			return err
		}
	}

	temperatures := []models.ProductTemperature{
		{ID: 1, Name: "Hot", Price: 0, IsActive: true},
		{ID: 2, Name: "Iced", Price: 2000, IsActive: true},
		{ID: 3, Name: "Warm", Price: 0, IsActive: true},
		{ID: 4, Name: "Extra Hot", Price: 1000, IsActive: true},
		{ID: 5, Name: "Blended", Price: 3000, IsActive: true},
	}
	for i := range temperatures {
		if err := db.FirstOrCreate(&temperatures[i], models.ProductTemperature{ID: temperatures[i].ID}).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"Coffee", "Non-Coffee", "Food", "Addon"} {
		category := models.Category{Name: name, IsActive: true}
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}

	return nil
}

// SeedAdmin creates the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("Skipping admin seed: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Profile:  &models.UserProfile{FullName: "Administrator"},
	}
	return db.Create(&admin).Error
}

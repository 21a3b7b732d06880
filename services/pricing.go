package services

import (
	"github.com/Kariqs/kopi-api/models"
	"github.com/shopspring/decimal"
)

// LinePrice is the unit price of a product with the chosen size and
// temperature surcharges applied.
func LinePrice(product models.Product, size *models.ProductSize, temperature *models.ProductTemperature) int64 {
	price := product.Price
	if size != nil {
		price += size.PriceAdjustment
	}
	if temperature != nil {
		price += temperature.Price
	}
	return price
}

// Subtotal sums unit price times quantity over every line.
func Subtotal(lines []models.CartItem) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += LinePrice(line.Product, line.Size, line.Temperature) * int64(line.Quantity)
	}
	return subtotal
}

// ApplyDiscount returns the discount for percentage (clamped to 0..100),
// rounded half away from zero, and the discounted total.
func ApplyDiscount(subtotal int64, percentage int) (discount, total int64) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	d := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(int64(percentage))).
		Div(decimal.NewFromInt(100)).
		Round(0)
	discount = d.IntPart()
	return discount, subtotal - discount
}

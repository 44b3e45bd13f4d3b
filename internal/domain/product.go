package domain

import "time"

// Product описывает товар каталога и его складской остаток
type Product struct {
	Model        string
	Category     Category
	SellingPrice int64 // Цена хранится в центах
	ArrivalDate  *time.Time
	Details      *string
	Quantity     int
}

func NewProduct(model string, category Category, sellingPrice int64, arrivalDate *time.Time, details *string, quantity int) *Product {
	return &Product{
		Model:        model,
		Category:     category,
		SellingPrice: sellingPrice,
		ArrivalDate:  arrivalDate,
		Details:      details,
		Quantity:     quantity,
	}
}

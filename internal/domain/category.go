package domain

import "github.com/ezstore-dev/go-backend/pkg/e"

// Category — категория товара
type Category string

const (
	Smartphone Category = "Smartphone"
	Laptop     Category = "Laptop"
	Appliance  Category = "Appliance"
)

// ParseCategory валидирует строковое представление категории.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Smartphone, Laptop, Appliance:
		return Category(s), nil
	default:
		return "", e.ErrInvalidCategory
	}
}

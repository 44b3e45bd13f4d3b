package domain

// ProductInCart — позиция корзины.
// Категория и цена копируются из каталога в момент добавления
// и дальше живут отдельно от товара (снапшот, не live-join).
type ProductInCart struct {
	Model    string
	Quantity int
	Category Category
	Price    int64 // Цена за единицу в центах на момент добавления
}

// Cart — корзина покупателя. Для каждого покупателя в любой момент
// существует не более одной корзины с Paid == false.
type Cart struct {
	ID          int64
	Customer    string
	Paid        bool
	PaymentDate *string // YYYY-MM-DD, заполняется при оплате
	Total       int64   // Всегда равен сумме Quantity*Price по позициям
	Products    []ProductInCart
}

// NewEmptyCart возвращает синтетическую пустую корзину покупателя.
// Используется, когда неоплаченной корзины в хранилище нет.
func NewEmptyCart(customer string) *Cart {
	return &Cart{
		Customer: customer,
		Paid:     false,
		Total:    0,
		Products: []ProductInCart{},
	}
}

func NewProductInCart(model string, quantity int, category Category, price int64) ProductInCart {
	return ProductInCart{
		Model:    model,
		Quantity: quantity,
		Category: category,
		Price:    price,
	}
}

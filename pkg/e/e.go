package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Доменные ошибки корзины и склада
	ErrProductNotFound   = fmt.Errorf("product not found")
	ErrEmptyStock        = fmt.Errorf("product stock is empty")
	ErrInsufficientStock = fmt.Errorf("insufficient product stock")
	ErrCartNotFound      = fmt.Errorf("no unpaid cart for customer")
	ErrEmptyCart         = fmt.Errorf("cart has no products")
	ErrProductNotInCart  = fmt.Errorf("product not in cart")

	// Доменные ошибки пользователей и отзывов
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrUserAlreadyExists    = fmt.Errorf("user already exists")
	ErrReviewNotFound       = fmt.Errorf("review not found")
	ErrReviewAlreadyExists  = fmt.Errorf("review already exists")
	ErrProductAlreadyExists = fmt.Errorf("product already exists")

	// Ошибки аутентификации и авторизации
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrForbidden          = fmt.Errorf("operation not allowed for role")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrSessionNotFound    = fmt.Errorf("session not found")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidPrice        = fmt.Errorf("invalid price")
	ErrPricePrecision      = fmt.Errorf("price must have at most 2 decimal places")
	ErrInvalidCategory     = fmt.Errorf("invalid product category")
	ErrInvalidRole         = fmt.Errorf("invalid user role")
	ErrInvalidScore        = fmt.Errorf("review score must be between 1 and 5")
	ErrInvalidQuantity     = fmt.Errorf("quantity must be positive")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

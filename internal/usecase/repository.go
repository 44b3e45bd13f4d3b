package usecase

import (
	"context"

	"github.com/ezstore-dev/go-backend/internal/domain"
)

// CartRepository — хранилище корзин и их позиций (Cart Store).
// Доменная валидация здесь не выполняется: отсутствие строк — это
// e.ErrCartNotFound либо no-op, любые прочие ошибки — ошибки хранилища.
type CartRepository interface {
	// GetUnpaidCart возвращает неоплаченную корзину покупателя вместе с позициями.
	// Внутри транзакции строка корзины блокируется (FOR UPDATE),
	// сериализуя все check-then-act последовательности по одному покупателю.
	GetUnpaidCart(ctx context.Context, customer string) (*domain.Cart, error)
	CreateCart(ctx context.Context, customer string) (*domain.Cart, error)
	AddLineItem(ctx context.Context, cartID int64, item domain.ProductInCart) error
	IncrementLineItem(ctx context.Context, cartID int64, model string) error
	DecrementLineItem(ctx context.Context, cartID int64, model string) error
	RemoveLineItem(ctx context.Context, cartID int64, model string) error
	AdjustTotal(ctx context.Context, cartID int64, delta int64) error
	ResetTotal(ctx context.Context, cartID int64) error
	ClearLineItems(ctx context.Context, cartID int64) error
	MarkPaid(ctx context.Context, cartID int64, paymentDate string) error
	GetPaidCarts(ctx context.Context, customer string) ([]domain.Cart, error)
	GetAllCarts(ctx context.Context) ([]domain.Cart, error)
	DeleteAll(ctx context.Context) error
}

// ProductRepository — каталог товаров и складской остаток (Stock Ledger).
type ProductRepository interface {
	FindByModel(ctx context.Context, model string) (*domain.Product, error)
	// FindByModelForUpdate читает товар с блокировкой строки; только внутри транзакции.
	FindByModelForUpdate(ctx context.Context, model string) (*domain.Product, error)
	DecrementQuantity(ctx context.Context, model string, amount int) error
	Create(ctx context.Context, product *domain.Product) error
	ChangeQuantity(ctx context.Context, model string, delta int) (int, error)
	GetProducts(ctx context.Context, category *domain.Category, model *string) ([]domain.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User, passwordHash, salt string) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetCredentials(ctx context.Context, username string) (passwordHash, salt string, err error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, username string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByModel(ctx context.Context, model string) ([]domain.Review, error)
	Delete(ctx context.Context, model, username string) error
	DeleteAllForModel(ctx context.Context, model string) error
}

// SessionRepository — хранилище сессий с TTL.
type SessionRepository interface {
	Create(ctx context.Context, sessionID, username string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// CacheRepository — кэш товаров по модели, ошибки кэша не фатальны.
type CacheRepository interface {
	GetProducts(ctx context.Context, models []string) (map[string]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, models []string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

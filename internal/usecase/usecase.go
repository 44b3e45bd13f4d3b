package usecase

import (
	"context"

	"github.com/ezstore-dev/go-backend/internal/domain"
)

type CartUC interface {
	AddToCart(ctx context.Context, user *domain.User, model string) error
	GetCart(ctx context.Context, user *domain.User) (*domain.Cart, error)
	CheckoutCart(ctx context.Context, user *domain.User) error
	GetCustomerCarts(ctx context.Context, user *domain.User) ([]domain.Cart, error)
	RemoveProductFromCart(ctx context.Context, user *domain.User, model string) error
	ClearCart(ctx context.Context, user *domain.User) error
	GetAllCarts(ctx context.Context) ([]domain.Cart, error)
	DeleteAllCarts(ctx context.Context) error
}

type ProductUC interface {
	RegisterProduct(ctx context.Context, req *RegisterProductReq) error
	ChangeQuantity(ctx context.Context, model string, delta int) (int, error)
	GetProducts(ctx context.Context, req *GetProductsReq) ([]domain.Product, error)
	GetProductByModel(ctx context.Context, model string) (*domain.Product, error)
}

type UserUC interface {
	Register(ctx context.Context, req *RegisterUserReq) error
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	Resolve(ctx context.Context, sessionID string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}

type ReviewUC interface {
	AddReview(ctx context.Context, user *domain.User, req *AddReviewReq) error
	GetReviews(ctx context.Context, model string) ([]domain.Review, error)
	DeleteReview(ctx context.Context, model, username string) error
	DeleteReviewsOfModel(ctx context.Context, model string) error
}

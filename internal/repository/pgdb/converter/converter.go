package converter

import (
	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CartConverter преобразует корзины и их позиции между domain и моделями PostgreSQL.
type CartConverter interface {
	ToEntity(cart *CartModel, items []CartProductModel) *domain.Cart
	ItemToEntity(model *CartProductModel) domain.ProductInCart
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter interface {
	ToEntity(model *UserModel) *domain.User
}

// ReviewConverter преобразует сущности Review между domain и моделью PostgreSQL.
type ReviewConverter interface {
	ToModel(entity *domain.Review) *ReviewModel
	ToEntity(model *ReviewModel) *domain.Review
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

package converter

import (
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
)

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl { return &ProductConverterImpl{} }

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		Model:       entity.Model,
		Category:    string(entity.Category),
		Price:       entity.SellingPrice,
		ArrivalDate: entity.ArrivalDate,
		Details:     entity.Details,
		Quantity:    entity.Quantity,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		Model:        model.Model,
		Category:     domain.Category(model.Category),
		SellingPrice: model.Price,
		ArrivalDate:  model.ArrivalDate,
		Details:      model.Details,
		Quantity:     model.Quantity,
	}
}

type CartConverterImpl struct{}

func NewCartConverterImpl() *CartConverterImpl { return &CartConverterImpl{} }

func (c *CartConverterImpl) ToEntity(cart *CartModel, items []CartProductModel) *domain.Cart {
	products := make([]domain.ProductInCart, 0, len(items))
	for i := range items {
		products = append(products, c.ItemToEntity(&items[i]))
	}

	var paymentDate *string
	if cart.PaymentDate != nil {
		formatted := cart.PaymentDate.Format(time.DateOnly)
		paymentDate = &formatted
	}

	return &domain.Cart{
		ID:          cart.ID,
		Customer:    cart.Customer,
		Paid:        cart.Paid,
		PaymentDate: paymentDate,
		Total:       cart.Total,
		Products:    products,
	}
}

func (c *CartConverterImpl) ItemToEntity(model *CartProductModel) domain.ProductInCart {
	return domain.ProductInCart{
		Model:    model.Model,
		Quantity: model.Quantity,
		Category: domain.Category(model.Category),
		Price:    model.Price,
	}
}

type UserConverterImpl struct{}

func NewUserConverterImpl() *UserConverterImpl { return &UserConverterImpl{} }

func (c *UserConverterImpl) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		Username: model.Username,
		Name:     model.Name,
		Surname:  model.Surname,
		Role:     domain.Role(model.Role),
	}
}

type ReviewConverterImpl struct{}

func NewReviewConverterImpl() *ReviewConverterImpl { return &ReviewConverterImpl{} }

func (c *ReviewConverterImpl) ToModel(entity *domain.Review) *ReviewModel {
	// Дата формируется в usecase, всегда в формате YYYY-MM-DD
	date, _ := time.Parse(time.DateOnly, entity.Date)

	return &ReviewModel{
		Model:    entity.Model,
		Username: entity.Username,
		Score:    entity.Score,
		Date:     date,
		Comment:  entity.Comment,
	}
}

func (c *ReviewConverterImpl) ToEntity(model *ReviewModel) *domain.Review {
	return &domain.Review{
		Model:    model.Model,
		Username: model.Username,
		Score:    model.Score,
		Date:     model.Date.Format(time.DateOnly),
		Comment:  model.Comment,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		Customer:    entity.Customer,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		Customer:    model.Customer,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}

package converter

import "github.com/ezstore-dev/go-backend/internal/domain"

// ProductConverter преобразует сущности Product между domain и моделью кэша.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl { return &ProductConverterImpl{} }

func (c *ProductConverterImpl) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		Model:       entity.Model,
		Category:    string(entity.Category),
		Price:       entity.SellingPrice,
		ArrivalDate: entity.ArrivalDate,
		Details:     entity.Details,
		Quantity:    entity.Quantity,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductRedisModel) *domain.Product {
	return &domain.Product{
		Model:        model.Model,
		Category:     domain.Category(model.Category),
		SellingPrice: model.Price,
		ArrivalDate:  model.ArrivalDate,
		Details:      model.Details,
		Quantity:     model.Quantity,
	}
}

func (c *ProductConverterImpl) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	result := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		result = append(result, *c.ToRedisModel(&entities[i]))
	}

	return result
}

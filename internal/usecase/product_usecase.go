package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
)

// ProductUseCase реализует управление каталогом и складским остатком.
// Ядро корзины потребляет только FindByModel/DecrementQuantity; остальная
// поверхность каталога обслуживает менеджерские операции.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductUC(productRepo ProductRepository, cacheRepo CacheRepository, logger logger.Logger) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// RegisterProduct добавляет новый товар в каталог.
func (p *ProductUseCase) RegisterProduct(ctx context.Context, req *RegisterProductReq) error {
	const op = "ProductUseCase.RegisterProduct"

	if err := p.validateProduct(req); err != nil {
		return e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Model, req.Category, req.Price, req.ArrivalDate, req.Details, req.Quantity)
	if err := p.productRepo.Create(ctx, product); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ChangeQuantity изменяет складской остаток товара на delta и возвращает
// новое количество.
func (p *ProductUseCase) ChangeQuantity(ctx context.Context, model string, delta int) (int, error) {
	const op = "ProductUseCase.ChangeQuantity"

	if delta == 0 {
		return 0, e.Wrap(op, e.ErrInvalidQuantity)
	}

	quantity, err := p.productRepo.ChangeQuantity(ctx, model, delta)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	p.invalidate(ctx, []string{model})

	return quantity, nil
}

// GetProducts возвращает товары каталога по необязательным фильтрам.
func (p *ProductUseCase) GetProducts(ctx context.Context, req *GetProductsReq) ([]domain.Product, error) {
	const op = "ProductUseCase.GetProducts"

	products, err := p.productRepo.GetProducts(ctx, req.Category, req.Model)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProductByModel возвращает товар, просматривая сначала кэш.
func (p *ProductUseCase) GetProductByModel(ctx context.Context, model string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProductByModel"

	cached, err := p.cacheRepo.GetProducts(ctx, []string{model})
	if err == nil {
		if product, ok := cached[model]; ok {
			return &product, nil
		}
	}

	product, err := p.productRepo.FindByModel(ctx, model)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, []domain.Product{*product}); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

func (p *ProductUseCase) invalidate(ctx context.Context, models []string) {
	if err := p.cacheRepo.DeleteProducts(ctx, models); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", err)
	}
}

// validateProduct проверяет корректность входных данных запроса на регистрацию товара.
func (p *ProductUseCase) validateProduct(req *RegisterProductReq) error {
	if strings.TrimSpace(req.Model) == "" {
		return e.ErrMissingFields
	}

	if req.Price <= 0 {
		return e.ErrInvalidPrice
	}

	if req.Quantity < 0 {
		return e.ErrInvalidQuantity
	}

	if _, err := domain.ParseCategory(string(req.Category)); err != nil {
		return err
	}

	return nil
}

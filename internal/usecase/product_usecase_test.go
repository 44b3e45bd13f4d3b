package usecase

import (
	"context"
	"testing"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProduct_Validation(t *testing.T) {
	uc := NewProductUC(newMockProductRepo(), newMockCacheRepo(), nopLogger{})

	tests := []struct {
		name string
		req  *RegisterProductReq
		want error
	}{
		{"empty model", &RegisterProductReq{Model: " ", Category: domain.Laptop, Price: 100}, e.ErrMissingFields},
		{"zero price", &RegisterProductReq{Model: "M1", Category: domain.Laptop, Price: 0}, e.ErrInvalidPrice},
		{"negative quantity", &RegisterProductReq{Model: "M1", Category: domain.Laptop, Price: 100, Quantity: -1}, e.ErrInvalidQuantity},
		{"unknown category", &RegisterProductReq{Model: "M1", Category: "Car", Price: 100}, e.ErrInvalidCategory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.RegisterProduct(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterProduct_Duplicate(t *testing.T) {
	uc := NewProductUC(newMockProductRepo(), newMockCacheRepo(), nopLogger{})
	req := &RegisterProductReq{Model: "M1", Category: domain.Smartphone, Price: 100, Quantity: 5}

	require.NoError(t, uc.RegisterProduct(context.Background(), req))
	err := uc.RegisterProduct(context.Background(), req)
	assert.ErrorIs(t, err, e.ErrProductAlreadyExists)
}

func TestChangeQuantity(t *testing.T) {
	productRepo := newMockProductRepo(
		&domain.Product{Model: "M1", Category: domain.Smartphone, SellingPrice: 100, Quantity: 5},
	)
	cacheRepo := newMockCacheRepo()
	uc := NewProductUC(productRepo, cacheRepo, nopLogger{})

	quantity, err := uc.ChangeQuantity(context.Background(), "M1", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, quantity)

	quantity, err = uc.ChangeQuantity(context.Background(), "M1", -8)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	_, err = uc.ChangeQuantity(context.Background(), "M1", -1)
	assert.ErrorIs(t, err, e.ErrInsufficientStock)

	_, err = uc.ChangeQuantity(context.Background(), "M1", 0)
	assert.ErrorIs(t, err, e.ErrInvalidQuantity)

	_, err = uc.ChangeQuantity(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestChangeQuantity_InvalidatesCache(t *testing.T) {
	productRepo := newMockProductRepo(
		&domain.Product{Model: "M1", Category: domain.Smartphone, SellingPrice: 100, Quantity: 5},
	)
	cacheRepo := newMockCacheRepo()
	require.NoError(t, cacheRepo.SetProducts(context.Background(), []domain.Product{
		{Model: "M1", Category: domain.Smartphone, SellingPrice: 100, Quantity: 5},
	}))

	uc := NewProductUC(productRepo, cacheRepo, nopLogger{})

	_, err := uc.ChangeQuantity(context.Background(), "M1", 1)
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.deleted, "M1")
}

func TestGetProductByModel_CacheHitSkipsRepo(t *testing.T) {
	productRepo := newMockProductRepo()
	productRepo.err = e.ErrInternalServerError // репозиторий не должен вызываться

	cacheRepo := newMockCacheRepo()
	cacheRepo.cached["M1"] = domain.Product{Model: "M1", Category: domain.Laptop, SellingPrice: 700, Quantity: 2}

	uc := NewProductUC(productRepo, cacheRepo, nopLogger{})

	product, err := uc.GetProductByModel(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, int64(700), product.SellingPrice)
}

func TestGetProductByModel_CacheMissReadsRepo(t *testing.T) {
	productRepo := newMockProductRepo(
		&domain.Product{Model: "M1", Category: domain.Laptop, SellingPrice: 700, Quantity: 2},
	)
	uc := NewProductUC(productRepo, newMockCacheRepo(), nopLogger{})

	product, err := uc.GetProductByModel(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, "M1", product.Model)

	_, err = uc.GetProductByModel(context.Background(), "ghost")
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestGetProducts_Filters(t *testing.T) {
	productRepo := newMockProductRepo(
		&domain.Product{Model: "M1", Category: domain.Laptop, SellingPrice: 700, Quantity: 2},
		&domain.Product{Model: "M2", Category: domain.Smartphone, SellingPrice: 300, Quantity: 1},
	)
	uc := NewProductUC(productRepo, newMockCacheRepo(), nopLogger{})

	all, err := uc.GetProducts(context.Background(), &GetProductsReq{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	laptop := domain.Laptop
	filtered, err := uc.GetProducts(context.Background(), &GetProductsReq{Category: &laptop})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "M1", filtered[0].Model)
}

package converter

import (
	"testing"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartConverter_FormatsPaymentDate(t *testing.T) {
	conv := NewCartConverterImpl()

	paid := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	cart := conv.ToEntity(&CartModel{
		ID:          1,
		Customer:    "alice",
		Paid:        true,
		PaymentDate: &paid,
		Total:       59999,
	}, []CartProductModel{
		{CartID: 1, Model: "M1", Quantity: 1, Category: "Smartphone", Price: 59999},
	})

	require.NotNil(t, cart.PaymentDate)
	assert.Equal(t, "2026-08-29", *cart.PaymentDate)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, domain.Smartphone, cart.Products[0].Category)
}

func TestCartConverter_UnpaidHasNilPaymentDate(t *testing.T) {
	conv := NewCartConverterImpl()

	cart := conv.ToEntity(&CartModel{ID: 2, Customer: "bob"}, nil)

	assert.Nil(t, cart.PaymentDate)
	assert.False(t, cart.Paid)
	assert.Empty(t, cart.Products)
}

func TestReviewConverter_DateRoundTrip(t *testing.T) {
	conv := NewReviewConverterImpl()

	model := conv.ToModel(&domain.Review{
		Model:    "M1",
		Username: "alice",
		Score:    5,
		Date:     "2026-08-29",
		Comment:  "ok",
	})
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), model.Date)

	entity := conv.ToEntity(model)
	assert.Equal(t, "2026-08-29", entity.Date)
	assert.Equal(t, 5, entity.Score)
}

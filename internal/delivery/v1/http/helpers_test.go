package http

import (
	"net/http"
	"testing"

	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"599.99", 59999, nil},
		{"600", 60000, nil},
		{"0.01", 1, nil},
		{"0", 0, nil},
		{"", 0, e.ErrInvalidPrice},
		{"  ", 0, e.ErrInvalidPrice},
		{"abc", 0, e.ErrInvalidPrice},
		{"-5", 0, e.ErrInvalidPrice},
		{"10.999", 0, e.ErrPricePrecision},
		{"2000000000", 0, e.ErrInvalidPrice},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parsePriceToCents(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "599.99", centsToDecimal(59999).String())
	assert.Equal(t, "0", centsToDecimal(0).String())
	assert.Equal(t, "100", centsToDecimal(10000).String())
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.ErrProductNotFound, http.StatusNotFound},
		{e.ErrCartNotFound, http.StatusNotFound},
		{e.ErrProductNotInCart, http.StatusNotFound},
		{e.ErrEmptyStock, http.StatusConflict},
		{e.ErrInsufficientStock, http.StatusConflict},
		{e.ErrUserAlreadyExists, http.StatusConflict},
		{e.ErrEmptyCart, http.StatusBadRequest},
		{e.ErrInvalidCategory, http.StatusBadRequest},
		{e.ErrInvalidCredentials, http.StatusUnauthorized},
		{e.ErrUnauthorized, http.StatusUnauthorized},
		{e.ErrForbidden, http.StatusForbidden},
		{e.ErrTransactionNotFound, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		code, _ := ToHTTPResponse(tc.err)
		assert.Equal(t, tc.code, code, "error: %v", tc.err)
	}

	// Обёрнутые ошибки сохраняют статус
	code, _ := ToHTTPResponse(e.Wrap("CartUseCase.AddToCart", e.ErrEmptyStock))
	assert.Equal(t, http.StatusConflict, code)
}

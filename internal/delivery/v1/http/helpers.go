package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCartNotFound):
		return http.StatusNotFound, e.ErrCartNotFound.Error()
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, e.ErrUserNotFound.Error()
	case errors.Is(err, e.ErrReviewNotFound):
		return http.StatusNotFound, e.ErrReviewNotFound.Error()
	case errors.Is(err, e.ErrProductNotInCart):
		return http.StatusNotFound, e.ErrProductNotInCart.Error()
	case errors.Is(err, e.ErrEmptyStock):
		return http.StatusConflict, e.ErrEmptyStock.Error()
	case errors.Is(err, e.ErrInsufficientStock):
		return http.StatusConflict, e.ErrInsufficientStock.Error()
	case errors.Is(err, e.ErrProductAlreadyExists):
		return http.StatusConflict, e.ErrProductAlreadyExists.Error()
	case errors.Is(err, e.ErrUserAlreadyExists):
		return http.StatusConflict, e.ErrUserAlreadyExists.Error()
	case errors.Is(err, e.ErrReviewAlreadyExists):
		return http.StatusConflict, e.ErrReviewAlreadyExists.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusBadRequest, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrInvalidCategory):
		return http.StatusBadRequest, e.ErrInvalidCategory.Error()
	case errors.Is(err, e.ErrInvalidRole):
		return http.StatusBadRequest, e.ErrInvalidRole.Error()
	case errors.Is(err, e.ErrInvalidScore):
		return http.StatusBadRequest, e.ErrInvalidScore.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrSessionNotFound):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

// centsToDecimal переводит цену из центов в десятичное представление для ответа.
func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// DTO ответов

type ProductResponse struct {
	Model       string          `json:"model"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ArrivalDate *string         `json:"arrivalDate,omitempty"`
	Details     *string         `json:"details,omitempty"`
	Quantity    int             `json:"quantity"`
}

type CartItemResponse struct {
	Model    string          `json:"model"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type CartResponse struct {
	Customer    string             `json:"customer"`
	Paid        bool               `json:"paid"`
	PaymentDate *string            `json:"paymentDate,omitempty"`
	Total       decimal.Decimal    `json:"total"`
	Products    []CartItemResponse `json:"products"`
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     string `json:"role"`
}

type ReviewResponse struct {
	Model    string `json:"model"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
}

func NewProductResponse(p *domain.Product) *ProductResponse {
	var arrival *string
	if p.ArrivalDate != nil {
		s := p.ArrivalDate.Format("2006-01-02")
		arrival = &s
	}

	return &ProductResponse{
		Model:       p.Model,
		Category:    string(p.Category),
		Price:       centsToDecimal(p.SellingPrice),
		ArrivalDate: arrival,
		Details:     p.Details,
		Quantity:    p.Quantity,
	}
}

func NewArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, *NewProductResponse(&products[i]))
	}

	return result
}

func NewCartResponse(cart *domain.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Products))
	for _, p := range cart.Products {
		items = append(items, CartItemResponse{
			Model:    p.Model,
			Quantity: p.Quantity,
			Category: string(p.Category),
			Price:    centsToDecimal(p.Price),
		})
	}

	return &CartResponse{
		Customer:    cart.Customer,
		Paid:        cart.Paid,
		PaymentDate: cart.PaymentDate,
		Total:       centsToDecimal(cart.Total),
		Products:    items,
	}
}

func NewArrCartResponse(carts []domain.Cart) []CartResponse {
	result := make([]CartResponse, 0, len(carts))
	for i := range carts {
		result = append(result, *NewCartResponse(&carts[i]))
	}

	return result
}

func NewUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		Username: u.Username,
		Name:     u.Name,
		Surname:  u.Surname,
		Role:     string(u.Role),
	}
}

func NewArrUserResponse(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *NewUserResponse(&users[i]))
	}

	return result
}

func NewReviewResponse(rv *domain.Review) *ReviewResponse {
	return &ReviewResponse{
		Model:    rv.Model,
		Username: rv.Username,
		Score:    rv.Score,
		Date:     rv.Date,
		Comment:  rv.Comment,
	}
}

func NewArrReviewResponse(reviews []domain.Review) []ReviewResponse {
	result := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, *NewReviewResponse(&reviews[i]))
	}

	return result
}

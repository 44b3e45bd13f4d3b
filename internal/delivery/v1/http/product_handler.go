package http

import (
	"net/http"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type registerProductReq struct {
	Model       string  `json:"model"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
	Quantity    int     `json:"quantity"`
	Details     *string `json:"details,omitempty"`
	ArrivalDate *string `json:"arrivalDate,omitempty"`
}

type changeQuantityReq struct {
	Delta int `json:"delta"`
}

// registerProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает новый товар в каталоге
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerProductReq	true	"Товар"
//	@Success		201		{object}	map[string]interface{}
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		409		{object}	ErrorResponse	"Товар уже существует"
//	@Router			/products [post]
func (h *ProductHandler) registerProduct(w http.ResponseWriter, r *http.Request) {
	var req registerProductReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Model == "" || req.Category == "" || req.Price == "" {
		h.logger.Warnf("%d %s: model=%q category=%q price=%q",
			http.StatusBadRequest, e.ErrMissingFields.Error(), req.Model, req.Category, req.Price)
		WriteError(w, e.ErrMissingFields)
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		WriteError(w, err)
		return
	}

	priceCents, err := parsePriceToCents(req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	var arrivalDate *time.Time
	if req.ArrivalDate != nil {
		t, err := time.Parse(time.DateOnly, *req.ArrivalDate)
		if err != nil {
			WriteError(w, e.ErrStatusBadRequest)
			return
		}
		arrivalDate = &t
	}

	ucReq := usecase.NewRegisterProductReq(req.Model, category, priceCents, req.Quantity, req.Details, arrivalDate)
	if err := h.productUsecase.RegisterProduct(r.Context(), ucReq); err != nil {
		h.logger.Warnf("register product failed (model: %s): %v", req.Model, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"model": req.Model})
}

// changeQuantity
//
//	@Summary		Изменение остатка товара
//	@Description	Прибавляет delta к остатку, отрицательная delta списывает
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			model	path		string				true	"Модель товара"
//	@Param			request	body		changeQuantityReq	true	"Изменение остатка"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Failure		409		{object}	ErrorResponse	"Недостаточно товара"
//	@Router			/products/{model}/quantity [patch]
func (h *ProductHandler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	var req changeQuantityReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	quantity, err := h.productUsecase.ChangeQuantity(r.Context(), model, req.Delta)
	if err != nil {
		h.logger.Warnf("change quantity failed (model: %s, delta: %d): %v", model, req.Delta, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"model":    model,
		"quantity": quantity,
	})
}

// getProducts
//
//	@Summary	Каталог товаров
//	@Tags		products
//	@Produce	json
//	@Param		category	query	string	false	"Фильтр по категории"
//	@Param		model		query	string	false	"Фильтр по модели"
//	@Success	200			{array}	ProductResponse
//	@Router		/products [get]
func (h *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	req := &usecase.GetProductsReq{}

	if s := r.URL.Query().Get("category"); s != "" {
		category, err := domain.ParseCategory(s)
		if err != nil {
			WriteError(w, err)
			return
		}
		req.Category = &category
	}

	if s := r.URL.Query().Get("model"); s != "" {
		req.Model = &s
	}

	products, err := h.productUsecase.GetProducts(r.Context(), req)
	if err != nil {
		h.logger.Warnf("get products failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrProductResponse(products))
}

// getProductByModel
//
//	@Summary	Карточка товара
//	@Tags		products
//	@Produce	json
//	@Param		model	path		string	true	"Модель товара"
//	@Success	200		{object}	ProductResponse
//	@Failure	404		{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{model} [get]
func (h *ProductHandler) getProductByModel(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	product, err := h.productUsecase.GetProductByModel(r.Context(), model)
	if err != nil {
		h.logger.Warnf("get product failed (model: %s): %v", model, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewProductResponse(product))
}

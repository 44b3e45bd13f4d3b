package http

import (
	"net/http"

	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type addToCartReq struct {
	Model string `json:"model"`
}

// addToCart
//
//	@Summary		Добавление товара в корзину
//	@Description	Добавляет единицу товара в неоплаченную корзину покупателя
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		addToCartReq	true	"Модель товара"
//	@Success		200		{object}	CartResponse
//	@Failure		404		{object}	ErrorResponse	"Товар не найден"
//	@Failure		409		{object}	ErrorResponse	"Товар закончился"
//	@Router			/cart/items [post]
func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Model == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	user := UserFromCtx(r.Context())
	if err := h.cartUsecase.AddToCart(r.Context(), user, req.Model); err != nil {
		h.logger.Warnf("add to cart failed (user: %s, model: %s): %v", user.Username, req.Model, err)
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.GetCart(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(cart))
}

// getCart
//
//	@Summary	Текущая корзина покупателя
//	@Tags		carts
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	user := UserFromCtx(r.Context())

	cart, err := h.cartUsecase.GetCart(r.Context(), user)
	if err != nil {
		h.logger.Warnf("get cart failed (user: %s): %v", user.Username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(cart))
}

// checkoutCart
//
//	@Summary		Оплата корзины
//	@Description	Атомарно проверяет остатки, списывает их и помечает корзину оплаченной
//	@Tags			carts
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Failure		400	{object}	ErrorResponse	"Корзина пуста"
//	@Failure		409	{object}	ErrorResponse	"Недостаточно товара"
//	@Router			/cart/checkout [post]
func (h *CartHandler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	user := UserFromCtx(r.Context())

	if err := h.cartUsecase.CheckoutCart(r.Context(), user); err != nil {
		h.logger.Warnf("checkout failed (user: %s): %v", user.Username, err)
		WriteError(w, err)
		return
	}

	carts, err := h.cartUsecase.GetCustomerCarts(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Последняя оплаченная корзина и есть только что оплаченная
	if len(carts) == 0 {
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"paid": true})
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(&carts[len(carts)-1]))
}

// getCustomerCarts
//
//	@Summary	Оплаченные корзины покупателя
//	@Tags		carts
//	@Produce	json
//	@Success	200	{array}	CartResponse
//	@Router		/carts [get]
func (h *CartHandler) getCustomerCarts(w http.ResponseWriter, r *http.Request) {
	user := UserFromCtx(r.Context())

	carts, err := h.cartUsecase.GetCustomerCarts(r.Context(), user)
	if err != nil {
		h.logger.Warnf("get customer carts failed (user: %s): %v", user.Username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrCartResponse(carts))
}

// removeFromCart
//
//	@Summary		Удаление товара из корзины
//	@Description	Уменьшает количество на единицу, последняя единица убирает позицию
//	@Tags			carts
//	@Produce		json
//	@Param			model	path		string	true	"Модель товара"
//	@Success		200		{object}	CartResponse
//	@Failure		404		{object}	ErrorResponse	"Товара нет в корзине"
//	@Router			/cart/items/{model} [delete]
func (h *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	user := UserFromCtx(r.Context())

	if err := h.cartUsecase.RemoveProductFromCart(r.Context(), user, model); err != nil {
		h.logger.Warnf("remove from cart failed (user: %s, model: %s): %v", user.Username, model, err)
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.GetCart(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(cart))
}

// clearCart
//
//	@Summary	Очистка корзины
//	@Tags		carts
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	user := UserFromCtx(r.Context())

	if err := h.cartUsecase.ClearCart(r.Context(), user); err != nil {
		h.logger.Warnf("clear cart failed (user: %s): %v", user.Username, err)
		WriteError(w, err)
		return
	}

	cart, err := h.cartUsecase.GetCart(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewCartResponse(cart))
}

// getAllCarts
//
//	@Summary	Все корзины всех покупателей
//	@Tags		carts
//	@Produce	json
//	@Success	200	{array}	CartResponse
//	@Router		/admin/carts [get]
func (h *CartHandler) getAllCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.cartUsecase.GetAllCarts(r.Context())
	if err != nil {
		h.logger.Warnf("get all carts failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrCartResponse(carts))
}

// deleteAllCarts
//
//	@Summary	Удаление всех корзин
//	@Tags		carts
//	@Success	204
//	@Router		/admin/carts [delete]
func (h *CartHandler) deleteAllCarts(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.DeleteAllCarts(r.Context()); err != nil {
		h.logger.Warnf("delete all carts failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

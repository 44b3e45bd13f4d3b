package http

import (
	"net/http"

	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUC
	logger        logger.Logger
}

func NewReviewHandler(reviewUsecase usecase.ReviewUC, logger logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase, logger: logger}
}

type addReviewReq struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// addReview
//
//	@Summary	Добавление отзыва
//	@Tags		reviews
//	@Accept		json
//	@Produce	json
//	@Param		model	path		string			true	"Модель товара"
//	@Param		request	body		addReviewReq	true	"Отзыв"
//	@Success	201		{object}	map[string]interface{}
//	@Failure	409		{object}	ErrorResponse	"Отзыв уже оставлен"
//	@Router		/products/{model}/reviews [post]
func (h *ReviewHandler) addReview(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	var req addReviewReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Comment == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	user := UserFromCtx(r.Context())
	if err := h.reviewUsecase.AddReview(r.Context(), user, usecase.NewAddReviewReq(model, req.Score, req.Comment)); err != nil {
		h.logger.Warnf("add review failed (user: %s, model: %s): %v", user.Username, model, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"model": model, "username": user.Username})
}

// getReviews
//
//	@Summary	Отзывы о товаре
//	@Tags		reviews
//	@Produce	json
//	@Param		model	path	string	true	"Модель товара"
//	@Success	200		{array}	ReviewResponse
//	@Router		/products/{model}/reviews [get]
func (h *ReviewHandler) getReviews(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	reviews, err := h.reviewUsecase.GetReviews(r.Context(), model)
	if err != nil {
		h.logger.Warnf("get reviews failed (model: %s): %v", model, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, NewArrReviewResponse(reviews))
}

// deleteReview
//
//	@Summary	Удаление отзыва
//	@Tags		reviews
//	@Param		model		path	string	true	"Модель товара"
//	@Param		username	path	string	true	"Автор отзыва"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse	"Отзыв не найден"
//	@Router		/products/{model}/reviews/{username} [delete]
func (h *ReviewHandler) deleteReview(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	username := chi.URLParam(r, "username")

	if err := h.reviewUsecase.DeleteReview(r.Context(), model, username); err != nil {
		h.logger.Warnf("delete review failed (model: %s, username: %s): %v", model, username, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

// deleteReviewsOfModel
//
//	@Summary	Удаление всех отзывов о товаре
//	@Tags		reviews
//	@Param		model	path	string	true	"Модель товара"
//	@Success	204
//	@Router		/products/{model}/reviews [delete]
func (h *ReviewHandler) deleteReviewsOfModel(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	if err := h.reviewUsecase.DeleteReviewsOfModel(r.Context(), model); err != nil {
		h.logger.Warnf("delete reviews failed (model: %s): %v", model, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

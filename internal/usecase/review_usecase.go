package usecase

import (
	"context"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/ezstore-dev/go-backend/pkg/logger"
)

// ReviewUseCase реализует отзывы о товарах: не более одного отзыва
// на пару (товар, пользователь), оценка 1..5.
type ReviewUseCase struct {
	reviewRepo  ReviewRepository
	productRepo ProductRepository
	logger      logger.Logger
}

func NewReviewUC(reviewRepo ReviewRepository, productRepo ProductRepository, logger logger.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// AddReview добавляет отзыв покупателя о товаре, датированный сегодняшним днём.
func (r *ReviewUseCase) AddReview(ctx context.Context, user *domain.User, req *AddReviewReq) error {
	const op = "ReviewUseCase.AddReview"

	if req.Score < 1 || req.Score > 5 {
		return e.Wrap(op, e.ErrInvalidScore)
	}

	if _, err := r.productRepo.FindByModel(ctx, req.Model); err != nil {
		return e.Wrap(op, err)
	}

	review := domain.NewReview(req.Model, user.Username, req.Score, time.Now().Format(time.DateOnly), req.Comment)
	if err := r.reviewRepo.Create(ctx, review); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetReviews возвращает все отзывы о товаре.
func (r *ReviewUseCase) GetReviews(ctx context.Context, model string) ([]domain.Review, error) {
	const op = "ReviewUseCase.GetReviews"

	if _, err := r.productRepo.FindByModel(ctx, model); err != nil {
		return nil, e.Wrap(op, err)
	}

	reviews, err := r.reviewRepo.GetByModel(ctx, model)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return reviews, nil
}

// DeleteReview удаляет отзыв конкретного пользователя о товаре.
func (r *ReviewUseCase) DeleteReview(ctx context.Context, model, username string) error {
	const op = "ReviewUseCase.DeleteReview"

	if err := r.reviewRepo.Delete(ctx, model, username); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// DeleteReviewsOfModel удаляет все отзывы о товаре.
func (r *ReviewUseCase) DeleteReviewsOfModel(ctx context.Context, model string) error {
	const op = "ReviewUseCase.DeleteReviewsOfModel"

	if _, err := r.productRepo.FindByModel(ctx, model); err != nil {
		return e.Wrap(op, err)
	}

	if err := r.reviewRepo.DeleteAllForModel(ctx, model); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

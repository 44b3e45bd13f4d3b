package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewUCFixture() (*ReviewUseCase, *mockReviewRepo) {
	reviewRepo := &mockReviewRepo{}
	productRepo := newMockProductRepo(
		&domain.Product{Model: "M1", Category: domain.Smartphone, SellingPrice: 100, Quantity: 5},
	)
	return NewReviewUC(reviewRepo, productRepo, nopLogger{}), reviewRepo
}

func TestAddReview(t *testing.T) {
	uc, _ := newReviewUCFixture()
	user := &domain.User{Username: "alice", Role: domain.RoleCustomer}

	require.NoError(t, uc.AddReview(context.Background(), user, NewAddReviewReq("M1", 5, "отличный телефон")))

	reviews, err := uc.GetReviews(context.Background(), "M1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Username)
	assert.Equal(t, 5, reviews[0].Score)
	assert.Equal(t, time.Now().Format(time.DateOnly), reviews[0].Date)
}

func TestAddReview_InvalidScore(t *testing.T) {
	uc, _ := newReviewUCFixture()
	user := &domain.User{Username: "alice", Role: domain.RoleCustomer}

	for _, score := range []int{0, 6, -1} {
		err := uc.AddReview(context.Background(), user, NewAddReviewReq("M1", score, "..."))
		assert.ErrorIs(t, err, e.ErrInvalidScore)
	}
}

func TestAddReview_UnknownProduct(t *testing.T) {
	uc, _ := newReviewUCFixture()
	user := &domain.User{Username: "alice", Role: domain.RoleCustomer}

	err := uc.AddReview(context.Background(), user, NewAddReviewReq("ghost", 4, "..."))
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestAddReview_OnePerUserAndModel(t *testing.T) {
	uc, _ := newReviewUCFixture()
	user := &domain.User{Username: "alice", Role: domain.RoleCustomer}

	require.NoError(t, uc.AddReview(context.Background(), user, NewAddReviewReq("M1", 4, "первый")))
	err := uc.AddReview(context.Background(), user, NewAddReviewReq("M1", 2, "второй"))
	assert.ErrorIs(t, err, e.ErrReviewAlreadyExists)
}

func TestDeleteReview(t *testing.T) {
	uc, _ := newReviewUCFixture()
	user := &domain.User{Username: "alice", Role: domain.RoleCustomer}

	require.NoError(t, uc.AddReview(context.Background(), user, NewAddReviewReq("M1", 4, "...")))
	require.NoError(t, uc.DeleteReview(context.Background(), "M1", "alice"))

	err := uc.DeleteReview(context.Background(), "M1", "alice")
	assert.ErrorIs(t, err, e.ErrReviewNotFound)
}

func TestDeleteReviewsOfModel(t *testing.T) {
	uc, _ := newReviewUCFixture()
	alice := &domain.User{Username: "alice", Role: domain.RoleCustomer}
	bob := &domain.User{Username: "bob", Role: domain.RoleCustomer}

	require.NoError(t, uc.AddReview(context.Background(), alice, NewAddReviewReq("M1", 4, "...")))
	require.NoError(t, uc.AddReview(context.Background(), bob, NewAddReviewReq("M1", 2, "...")))

	require.NoError(t, uc.DeleteReviewsOfModel(context.Background(), "M1"))

	reviews, err := uc.GetReviews(context.Background(), "M1")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewDeps() (*ItemRepoMock, *ReviewRepoMock, *usecase.ReviewUsecase) {
	itemRepo := new(ItemRepoMock)
	reviewRepo := new(ReviewRepoMock)

	tx := &txManagerStub{repos: &txReposStub{
		items:      itemRepo,
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		reviews:    reviewRepo,
	}}

	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return itemRepo, reviewRepo, usecase.NewReviewUsecase(tx, &seqIDGen{}, clock)
}

func intPtr(n int) *int { return &n }

// 本文が空なら400。
func TestSubmitReview_MessageRequired(t *testing.T) {
	_, reviewRepo, uc := newReviewDeps()

	_, err := uc.SubmitReview(context.Background(), "user-1", "rtx-5090", usecase.SubmitReviewInput{
		Message: "  ",
	})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 評価の範囲外（6）は400。
func TestSubmitReview_RatingOutOfRange(t *testing.T) {
	_, _, uc := newReviewDeps()

	_, err := uc.SubmitReview(context.Background(), "user-1", "rtx-5090", usecase.SubmitReviewInput{
		Message: "great card",
		Rating:  intPtr(6),
	})

	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// 存在しないslugは404。レビューは作られない。
func TestSubmitReview_UnknownSlug(t *testing.T) {
	itemRepo, reviewRepo, uc := newReviewDeps()

	itemRepo.On("FindBySlug", mock.Anything, "no-such-item").
		Return(model.Item{}, repo.ErrNotFound)

	_, err := uc.SubmitReview(context.Background(), "user-1", "no-such-item", usecase.SubmitReviewInput{
		Message: "great card",
	})

	assertHTTPStatus(t, err, http.StatusNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 投稿後は平均評価（評価なしレビューは除外）で商品ratingを更新する。
func TestSubmitReview_RecalculatesRating(t *testing.T) {
	itemRepo, reviewRepo, uc := newReviewDeps()

	avg := 4.0

	itemRepo.On("FindBySlug", mock.Anything, "rtx-5090").
		Return(model.Item{ID: "item-1", Slug: "rtx-5090"}, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ItemID == "item-1" && r.UserID == "user-1" &&
			r.Message == "solid" && r.Rating != nil && *r.Rating == 5
	})).Return(nil)
	reviewRepo.On("AverageRating", mock.Anything, "item-1").Return(&avg, nil)
	itemRepo.On("UpdateRating", mock.Anything, "item-1", &avg).Return(nil)

	out, err := uc.SubmitReview(context.Background(), "user-1", "rtx-5090", usecase.SubmitReviewInput{
		Message: "solid",
		Rating:  intPtr(5),
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.ItemRating) {
		assert.Equal(t, 4.0, *out.ItemRating)
	}
	itemRepo.AssertExpectations(t)
	reviewRepo.AssertExpectations(t)
}

// 評価つきレビューがひとつも無ければratingはnilのまま。
func TestSubmitReview_NoRatedReviews(t *testing.T) {
	itemRepo, reviewRepo, uc := newReviewDeps()

	itemRepo.On("FindBySlug", mock.Anything, "rtx-5090").
		Return(model.Item{ID: "item-1", Slug: "rtx-5090"}, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviewRepo.On("AverageRating", mock.Anything, "item-1").Return((*float64)(nil), nil)
	itemRepo.On("UpdateRating", mock.Anything, "item-1", (*float64)(nil)).Return(nil)

	out, err := uc.SubmitReview(context.Background(), "user-1", "rtx-5090", usecase.SubmitReviewInput{
		Message: "no stars, just words",
	})

	assert.NoError(t, err)
	assert.Nil(t, out.ItemRating)
	itemRepo.AssertExpectations(t)
}

// 一覧は存在しないslugで404。
func TestListReviews_UnknownSlug(t *testing.T) {
	itemRepo, _, uc := newReviewDeps()

	itemRepo.On("FindBySlug", mock.Anything, "no-such-item").
		Return(model.Item{}, repo.ErrNotFound)

	_, err := uc.ListReviews(context.Background(), "no-such-item")

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestListReviews(t *testing.T) {
	itemRepo, reviewRepo, uc := newReviewDeps()

	itemRepo.On("FindBySlug", mock.Anything, "rtx-5090").
		Return(model.Item{ID: "item-1", Slug: "rtx-5090"}, nil)
	reviewRepo.On("ListByItemID", mock.Anything, "item-1").
		Return([]model.Review{
			{ID: "rev-2", ItemID: "item-1", Message: "newer"},
			{ID: "rev-1", ItemID: "item-1", Message: "older"},
		}, nil)

	reviews, err := uc.ListReviews(context.Background(), "rtx-5090")

	assert.NoError(t, err)
	if assert.Len(t, reviews, 2) {
		assert.Equal(t, "rev-2", reviews[0].ID)
	}
}

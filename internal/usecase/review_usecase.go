package usecase

import (
	"context"
	"net/http"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

// ReviewUsecaseはレビュー投稿と商品評価の再集計。
// 再集計はレビュー保存のたびに同期で行う（バッチではない）。
type ReviewUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

// DI
func NewReviewUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{
		tx:    tx,
		idGen: idGen,
		clock: clock,
	}
}

type SubmitReviewInput struct {
	Message string
	Rating  *int // 任意。あれば0〜5。
}

type ReviewOutput struct {
	Review     model.Review `json:"review"`
	ItemRating *float64     `json:"item_rating"` // 再集計後の商品評価
}

// SubmitReviewはレビューを作成し、直後に商品のratingを
// 「評価つきレビューの平均」で更新する。評価なしは平均に入れない。
func (u *ReviewUsecase) SubmitReview(ctx context.Context, userID string, slug string, in SubmitReviewInput) (ReviewOutput, error) {
	if userID == "" {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Message) == "" {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "message required")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be 0-5")
	}

	var out ReviewOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.Items().FindBySlug(ctx, slug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		review := model.Review{
			ID:       u.idGen.NewID(),
			UserID:   userID,
			ItemID:   item.ID,
			Message:  in.Message,
			Rating:   in.Rating,
			PostDate: u.clock.Now(),
		}
		if err := r.Reviews().Create(ctx, review); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//作成直後に再集計して商品へ書き戻す
		avg, err := r.Reviews().AverageRating(ctx, item.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Items().UpdateRating(ctx, item.ID, avg); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ReviewOutput{Review: review, ItemRating: avg}
		return nil
	})

	if err != nil {
		return ReviewOutput{}, err
	}
	return out, nil
}

// ListReviewsは商品のレビュー一覧（新しい順）。
func (u *ReviewUsecase) ListReviews(ctx context.Context, slug string) ([]model.Review, error) {
	var reviews []model.Review

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.Items().FindBySlug(ctx, slug)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		reviews, err = r.Reviews().ListByItemID(ctx, item.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return []model.Review{}, err
	}
	return reviews, nil
}

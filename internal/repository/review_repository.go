package repository

import (
	"context"

	"shop/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) error

	// 評価つきレビューの平均。評価なしレビューは分母にも入れない。
	// 評価つきレビューが1件も無ければ(nil, nil)。
	AverageRating(ctx context.Context, itemID string) (*float64, error)

	ListByItemID(ctx context.Context, itemID string) ([]model.Review, error)
}

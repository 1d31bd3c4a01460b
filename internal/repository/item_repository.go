package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ItemListQuery struct {
	Category model.Category // 空なら全カテゴリ
	Sort     string         // title | category | discount_price | rating
	Page     int
	Limit    int
}

// 商品の永続化（保存・取得）だけを約束。
// discount_priceの再計算は呼び出し側（usecase）の責務。
type ItemRepository interface {
	List(ctx context.Context, q ItemListQuery) ([]model.Item, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.Item, error)
	FindByID(ctx context.Context, id string) (model.Item, error)

	Create(ctx context.Context, item model.Item) error
	Update(ctx context.Context, item model.Item) error
	UpdateRating(ctx context.Context, itemID string, rating *float64) error
}

package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

// カテゴリ絞り込み＋ソート＋ページングで商品を返す。
func (r *ItemGormRepository) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Item{}, 0, err
	}

	//sort（昇順）
	switch q.Sort {
	case "category":
		tx = tx.Order("category asc")
	case "discount_price":
		tx = tx.Order("discount_price asc")
	case "rating":
		tx = tx.Order("rating asc")
	default:
		tx = tx.Order("title asc")
	}
	tx = tx.Order("id asc")

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.Item{}, 0, err
	}

	return items, total, nil
}

// slugで商品を取得
func (r *ItemGormRepository) FindBySlug(ctx context.Context, slug string) (model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// IDで商品を取得
func (r *ItemGormRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// 商品の作成
func (r *ItemGormRepository) Create(ctx context.Context, item model.Item) error {
	return r.db.WithContext(ctx).Create(&item).Error
}

// 商品の更新
func (r *ItemGormRepository) Update(ctx context.Context, item model.Item) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"title":          item.Title,
		"category":       item.Category,
		"description":    item.Description,
		"price":          item.Price,
		"discount":       item.Discount,
		"discount_price": item.DiscountPrice,
		"slug":           item.Slug,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// レビュー平均を書き戻す。nilならNULL（未評価）に戻す。
func (r *ItemGormRepository) UpdateRating(ctx context.Context, itemID string, rating *float64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("rating", rating)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

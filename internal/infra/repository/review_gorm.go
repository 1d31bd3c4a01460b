package repository

import (
	"context"
	"database/sql"

	"shop/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) error {
	return r.db.WithContext(ctx).Create(&review).Error
}

// 評価つきレビューの平均を返す。評価なしは分子にも分母にも入れない。
func (r *ReviewGormRepository) AverageRating(ctx context.Context, itemID string) (*float64, error) {
	var avg sql.NullFloat64

	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("item_id = ? AND rating IS NOT NULL", itemID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	if !avg.Valid {
		return nil, nil
	}

	v := avg.Float64
	return &v, nil
}

// 商品のレビューを新しい順で一覧取得
func (r *ReviewGormRepository) ListByItemID(ctx context.Context, itemID string) ([]model.Review, error) {
	var reviews []model.Review

	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("post_date desc").
		Find(&reviews).Error; err != nil {
		return []model.Review{}, err
	}

	return reviews, nil
}

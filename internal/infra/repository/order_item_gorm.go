package repository

import (
	"context"

	"shop/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 明細を作成順で一覧取得
func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.OrderItem{}, err
	}

	return items, nil
}

// 同一商品は数量+1、無ければamount=1で作成。
// idx_order_item（order_id, item_id）への1文のupsertなので、
// 同時追加でもどちらかがINSERT・もう片方が加算になる。
func (r *OrderItemGormRepository) AddOne(ctx context.Context, newID string, orderID string, itemID string) error {
	newLine := model.OrderItem{
		ID:      newID,
		OrderID: orderID,
		ItemID:  itemID,
		Amount:  1,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":     gorm.Expr("order_items.amount + 1"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&newLine).Error
}

// 該当明細を削除。0件でもエラーなし（冪等）。
func (r *OrderItemGormRepository) DeleteByOrderAndItem(ctx context.Context, orderID string, itemID string) error {
	return r.db.WithContext(ctx).
		Where("order_id = ? AND item_id = ?", orderID, itemID).
		Delete(&model.OrderItem{}).Error
}

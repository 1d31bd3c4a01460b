package model

import "time"

// 注文の明細。
// 同一注文内の同一商品は1行（追加は数量加算）。
type OrderItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_order_item" json:"order_id"`
	ItemID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_order_item" json:"item_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

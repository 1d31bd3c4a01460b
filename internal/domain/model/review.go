package model

import "time"

// Ratingは任意（null可、0〜5）。null評価は商品平均の計算から除外する。
type Review struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID   string    `gorm:"type:uuid;not null;index" json:"item_id"`
	Message  string    `gorm:"type:text;not null" json:"message"`
	Rating   *int      `json:"rating"`
	PostDate time.Time `gorm:"not null;autoCreateTime" json:"post_date"`
}

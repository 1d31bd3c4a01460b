package model

import "time"

// 1ユーザーにつき未払い（is_paid=false）の注文は1つ。
// 未払い注文がそのままカートになる。
// この不変条件は部分一意インデックス（user_id WHERE is_paid=false）で守る。
type Order struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_open_order_per_user,unique,where:is_paid = false" json:"user_id"`
	IsPaid    bool      `gorm:"not null;default:false;index" json:"is_paid"`
	ShipTo    string    `gorm:"type:varchar(255)" json:"ship_to"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

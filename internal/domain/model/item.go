package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryRAM         Category = "RAM"
	CategoryGPU         Category = "GPU"
	CategoryCPU         Category = "CPU"
	CategoryHDD         Category = "HDD"
	CategoryMotherboard Category = "MB"
	CategoryFan         Category = "FAN"
	CategoryPowerSupply Category = "PS"
)

// カテゴリが定義済みかどうか
func ValidCategory(c Category) bool {
	switch c {
	case CategoryRAM, CategoryGPU, CategoryCPU, CategoryHDD,
		CategoryMotherboard, CategoryFan, CategoryPowerSupply:
		return true
	default:
		return false
	}
}

// Ratingはレビュー平均から導出（レビューが無い間はnull）
type Item struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(100);not null" json:"title"`
	Category      Category        `gorm:"type:varchar(3);not null;index" json:"category"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(7,2);not null" json:"price"`
	Discount      int             `gorm:"not null;default:0" json:"discount"`
	DiscountPrice decimal.Decimal `gorm:"type:decimal(7,2);not null" json:"discount_price"`
	Rating        *float64        `gorm:"type:numeric(2,1)" json:"rating"`
	Slug          string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 割引後価格 = price - price * discount / 100
func DiscountPriceOf(price decimal.Decimal, discount int) decimal.Decimal {
	cut := price.Mul(decimal.NewFromInt(int64(discount))).Div(decimal.NewFromInt(100))
	return price.Sub(cut).Round(2)
}

// 保存前に必ず呼んでdiscount_priceを再計算する
func (i *Item) Recalculate() {
	i.DiscountPrice = DiscountPriceOf(i.Price, i.Discount)
}

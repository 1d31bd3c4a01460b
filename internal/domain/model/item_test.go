package model_test

import (
	"testing"

	"shop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountPriceOf(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount int
		want     string
	}{
		{name: "20%引き", price: "100.00", discount: 20, want: "80.00"},
		{name: "割引なし", price: "59.99", discount: 0, want: "59.99"},
		{name: "全額引き", price: "10.00", discount: 100, want: "0.00"},
		{name: "端数は2桁に丸め", price: "19.99", discount: 10, want: "17.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			got := model.DiscountPriceOf(price, tt.discount)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.String(), tt.want)
		})
	}
}

func TestItemRecalculate(t *testing.T) {
	item := model.Item{
		Price:    decimal.RequireFromString("100.00"),
		Discount: 25,
	}

	item.Recalculate()

	assert.True(t, item.DiscountPrice.Equal(decimal.RequireFromString("75.00")))
}

func TestValidCategory(t *testing.T) {
	assert.True(t, model.ValidCategory(model.CategoryGPU))
	assert.True(t, model.ValidCategory(model.Category("PS")))
	assert.False(t, model.ValidCategory(model.Category("SSD")))
	assert.False(t, model.ValidCategory(model.Category("")))
}

package model_test

import (
	"sync"
	"testing"

	"shop/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// 「未払い注文は1ユーザー1件」はDB側の部分一意インデックスで守る。
// 同時の初回カート追加は片方のINSERTが必ず一意制約違反になる。
func TestOrderOpenOrderUniqueIndex(t *testing.T) {
	sch, err := schema.Parse(&model.Order{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	found := false
	for _, idx := range sch.ParseIndexes() {
		if idx.Name != "idx_open_order_per_user" {
			continue
		}
		found = true
		assert.Equal(t, "UNIQUE", idx.Class)
		assert.Equal(t, "is_paid = false", idx.Where)
		if assert.Len(t, idx.Fields, 1) {
			assert.Equal(t, "user_id", idx.Fields[0].DBName)
		}
	}
	assert.True(t, found, "idx_open_order_per_user not declared")
}

// 明細は(order_id, item_id)の複合一意。同一商品の二重行はDBが拒否する。
func TestOrderItemCompositeUniqueIndex(t *testing.T) {
	sch, err := schema.Parse(&model.OrderItem{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	found := false
	for _, idx := range sch.ParseIndexes() {
		if idx.Name != "idx_order_item" {
			continue
		}
		found = true
		assert.Equal(t, "UNIQUE", idx.Class)
		if assert.Len(t, idx.Fields, 2) {
			assert.Equal(t, "order_id", idx.Fields[0].DBName)
			assert.Equal(t, "item_id", idx.Fields[1].DBName)
		}
	}
	assert.True(t, found, "idx_order_item not declared")
}

package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderItemRepository interface {
	// 明細を作成順で返す
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)

	// 同一(order, item)の行があれば数量+1、無ければamount=1で作成。
	AddOne(ctx context.Context, newID string, orderID string, itemID string) error

	// 該当する明細を削除。0件でもエラーにしない。
	DeleteByOrderAndItem(ctx context.Context, orderID string, itemID string) error
}

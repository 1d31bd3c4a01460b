package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderRepository interface {
	// 未払い注文（カート）を取得。無ければErrNotFound。
	FindOpenByUserID(ctx context.Context, userID string) (model.Order, error)

	// 未払い注文を取得し、無ければnewIDで作成する。
	// 「未払いは1ユーザー1件」を守るため実装はロック＋リトライで直列化する。
	GetOrCreateOpenByUserID(ctx context.Context, userID string, newID string) (model.Order, error)

	// 未払い注文をis_paid=trueへ。ship_toも同時に確定する。
	// 対象が無い（既に支払済み含む）ならErrNotFound。
	MarkPaid(ctx context.Context, orderID string, shipTo string) error

	ListPaidByUserID(ctx context.Context, userID string) ([]model.Order, error)
}

package usecase

import (
	"context"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カート＝ユーザーの未払い注文。複数ステップの変更は必ずトランザクションで包む。
type CartUsecase struct {
	tx       repo.TransactionManager
	itemRepo repo.ItemRepository
	idGen    IDGenerator
}

// DI
func NewCartUsecase(
	tx repo.TransactionManager,
	itemRepo repo.ItemRepository,
	idGen IDGenerator,
) *CartUsecase {
	return &CartUsecase{
		tx:       tx,
		itemRepo: itemRepo,
		idGen:    idGen,
	}
}

type CartLineOutput struct {
	ItemID    string          `json:"item_id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"` // 割引後価格
	Amount    int64           `json:"amount"`
	Subtotal  decimal.Decimal `json:"subtotal"` // amount × unit_price
}

type CartOutput struct {
	Items []CartLineOutput `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

func emptyCart() CartOutput {
	return CartOutput{Items: []CartLineOutput{}, Total: decimal.Zero}
}

// AddToCartはカートに1つ追加（同一商品は数量+1）。
// 未払い注文が無ければ作る。存在しないslugなら404で、注文も作らない。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, slug string) (CartOutput, error) {
	if userID == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 商品の解決はトランザクションの前。無い商品で空注文を作らないため。
	item, err := u.itemRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out CartOutput

	// 注文のget-or-createと明細のupsertをひとつのTxで直列化する
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().GetOrCreateOpenByUserID(ctx, userID, u.idGen.NewID())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().AddOne(ctx, u.idGen.NewID(), order.ID, item.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := u.buildCartOutput(ctx, r, order.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// RemoveFromCartは該当商品の明細を削除。
// 未払い注文や明細が無くてもエラーにしない（no-op）。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, slug string) (CartOutput, error) {
	if userID == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	item, err := u.itemRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out CartOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindOpenByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			//カートが無いなら何もしない
			out = emptyCart()
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().DeleteByOrderAndItem(ctx, order.ID, item.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := u.buildCartOutput(ctx, r, order.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// ViewCartはカートの中身（小計つき）と合計を返す。
// 未払い注文が無ければ空カート（total=0）。
func (u *CartUsecase) ViewCart(ctx context.Context, userID string) (CartOutput, error) {
	if userID == "" {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindOpenByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			out = emptyCart()
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := u.buildCartOutput(ctx, r, order.ID)
		if err != nil {
			return err
		}
		out = cart
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// 明細（作成順）から小計と合計を組み立てる。
// 小計 = amount × 現在のdiscount_price。
func (u *CartUsecase) buildCartOutput(ctx context.Context, r repo.TxRepos, orderID string) (CartOutput, error) {
	lines, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outLines := make([]CartLineOutput, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		item, err := r.Items().FindByID(ctx, line.ItemID)
		if err != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subtotal := lineSubtotal(item, line.Amount)
		outLines = append(outLines, CartLineOutput{
			ItemID:    item.ID,
			Slug:      item.Slug,
			Title:     item.Title,
			UnitPrice: item.DiscountPrice,
			Amount:    line.Amount,
			Subtotal:  subtotal,
		})

		total = total.Add(subtotal)
	}

	return CartOutput{Items: outLines, Total: total}, nil
}

func lineSubtotal(item model.Item, amount int64) decimal.Decimal {
	return item.DiscountPrice.Mul(decimal.NewFromInt(amount))
}

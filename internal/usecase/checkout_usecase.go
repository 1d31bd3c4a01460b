package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CheckoutUsecaseは注文の「未払い→支払済み」への一方向遷移。
// 決済処理そのものはスコープ外（スタブ）。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type CheckoutInput struct {
	ShipTo string
}

type OrderLineOutput struct {
	ItemID    string          `json:"item_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    int64           `json:"amount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID        string            `json:"id"`
	IsPaid    bool              `json:"is_paid"`
	ShipTo    string            `json:"ship_to"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderLineOutput `json:"items"`
}

// Checkoutは未払い注文に配送先をセットしてis_paid=trueにする。
// 未払い注文が無ければ412で、何も作らず何も変更しない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	shipTo := strings.TrimSpace(in.ShipTo)
	if shipTo == "" || len(shipTo) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid ship_to")
	}

	var out OrderOutput

	//検索と状態遷移をひとつのTxで行う
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindOpenByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusPreconditionFailed, "no open order")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().MarkPaid(ctx, order.ID, shipTo); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusPreconditionFailed, "no open order")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.IsPaid = true
		order.ShipTo = shipTo

		result, err := buildOrderOutput(ctx, r, order)
		if err != nil {
			return err
		}
		out = result
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrdersは支払済み注文の履歴を返す。
func (u *CheckoutUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListPaidByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := buildOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func buildOrderOutput(ctx context.Context, r repo.TxRepos, order model.Order) (OrderOutput, error) {
	lines, err := r.OrderItems().ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outLines := make([]OrderLineOutput, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		item, err := r.Items().FindByID(ctx, line.ItemID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		subtotal := lineSubtotal(item, line.Amount)
		outLines = append(outLines, OrderLineOutput{
			ItemID:    item.ID,
			Title:     item.Title,
			UnitPrice: item.DiscountPrice,
			Amount:    line.Amount,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	return OrderOutput{
		ID:        order.ID,
		IsPaid:    order.IsPaid,
		ShipTo:    order.ShipTo,
		Total:     total,
		CreatedAt: order.CreatedAt,
		Items:     outLines,
	}, nil
}

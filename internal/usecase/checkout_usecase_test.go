package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCheckoutDeps() (*ItemRepoMock, *OrderRepoMock, *OrderItemRepoMock, *usecase.CheckoutUsecase) {
	itemRepo := new(ItemRepoMock)
	orderRepo := new(OrderRepoMock)
	orderItemRepo := new(OrderItemRepoMock)

	tx := &txManagerStub{repos: &txReposStub{
		items:      itemRepo,
		orders:     orderRepo,
		orderItems: orderItemRepo,
		reviews:    new(ReviewRepoMock),
	}}

	return itemRepo, orderRepo, orderItemRepo, usecase.NewCheckoutUsecase(tx)
}

// 配送先が空なら400。Txにも入らない。
func TestCheckout_EmptyShipTo(t *testing.T) {
	_, orderRepo, _, uc := newCheckoutDeps()

	_, err := uc.Checkout(context.Background(), "user-1", usecase.CheckoutInput{ShipTo: "   "})

	assertHTTPStatus(t, err, http.StatusBadRequest)
	orderRepo.AssertNotCalled(t, "FindOpenByUserID", mock.Anything, mock.Anything)
}

// 未払い注文が無ければ412。状態は一切変更しない。
func TestCheckout_NoOpenOrder(t *testing.T) {
	_, orderRepo, _, uc := newCheckoutDeps()

	orderRepo.On("FindOpenByUserID", mock.Anything, "user-1").
		Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.Checkout(context.Background(), "user-1", usecase.CheckoutInput{ShipTo: "Osaka"})

	assertHTTPStatus(t, err, http.StatusPreconditionFailed)
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

// 成功時は is_paid=true と ship_to が返り、合計も再計算される。
func TestCheckout_MarksOrderPaid(t *testing.T) {
	itemRepo, orderRepo, orderItemRepo, uc := newCheckoutDeps()

	gpu := model.Item{ID: "item-1", Title: "RTX 5090", DiscountPrice: dec("80.00")}

	orderRepo.On("FindOpenByUserID", mock.Anything, "user-1").
		Return(model.Order{ID: "order-1", UserID: "user-1"}, nil)
	orderRepo.On("MarkPaid", mock.Anything, "order-1", "Osaka").Return(nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, "order-1").
		Return([]model.OrderItem{{OrderID: "order-1", ItemID: "item-1", Amount: 2}}, nil)
	itemRepo.On("FindByID", mock.Anything, "item-1").Return(gpu, nil)

	out, err := uc.Checkout(context.Background(), "user-1", usecase.CheckoutInput{ShipTo: "Osaka"})

	assert.NoError(t, err)
	assert.True(t, out.IsPaid)
	assert.Equal(t, "Osaka", out.ShipTo)
	assert.True(t, out.Total.Equal(dec("160.00")))
	orderRepo.AssertExpectations(t)
}

// 履歴は支払済み注文ごとに明細と合計を組み立てる。
func TestListMyOrders(t *testing.T) {
	itemRepo, orderRepo, orderItemRepo, uc := newCheckoutDeps()

	ssd := model.Item{ID: "item-2", Title: "NVMe SSD", DiscountPrice: dec("15.50")}

	orderRepo.On("ListPaidByUserID", mock.Anything, "user-1").
		Return([]model.Order{{ID: "order-9", UserID: "user-1", IsPaid: true, ShipTo: "Tokyo"}}, nil)
	orderItemRepo.On("ListByOrderID", mock.Anything, "order-9").
		Return([]model.OrderItem{{OrderID: "order-9", ItemID: "item-2", Amount: 1}}, nil)
	itemRepo.On("FindByID", mock.Anything, "item-2").Return(ssd, nil)

	outs, err := uc.ListMyOrders(context.Background(), "user-1")

	assert.NoError(t, err)
	if assert.Len(t, outs, 1) {
		assert.Equal(t, "order-9", outs[0].ID)
		assert.True(t, outs[0].IsPaid)
		assert.True(t, outs[0].Total.Equal(dec("15.50")))
	}
}

package usecase_test

import (
	"context"
	"testing"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ItemRepoMock) FindBySlug(ctx context.Context, slug string) (model.Item, error) {
	args := m.Called(ctx, slug)
	item, _ := args.Get(0).(model.Item)
	return item, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, id string) (model.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.Item)
	return item, args.Error(1)
}

func (m *ItemRepoMock) Create(ctx context.Context, item model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepoMock) Update(ctx context.Context, item model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepoMock) UpdateRating(ctx context.Context, itemID string, rating *float64) error {
	args := m.Called(ctx, itemID, rating)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindOpenByUserID(ctx context.Context, userID string) (model.Order, error) {
	args := m.Called(ctx, userID)
	order, _ := args.Get(0).(model.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) GetOrCreateOpenByUserID(ctx context.Context, userID string, newID string) (model.Order, error) {
	args := m.Called(ctx, userID, newID)
	order, _ := args.Get(0).(model.Order)
	return order, args.Error(1)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string, shipTo string) error {
	args := m.Called(ctx, orderID, shipTo)
	return args.Error(0)
}

func (m *OrderRepoMock) ListPaidByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderItem)
	return lines, args.Error(1)
}

func (m *OrderItemRepoMock) AddOne(ctx context.Context, newID string, orderID string, itemID string) error {
	args := m.Called(ctx, newID, orderID, itemID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) DeleteByOrderAndItem(ctx context.Context, orderID string, itemID string) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) Create(ctx context.Context, review model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepoMock) AverageRating(ctx context.Context, itemID string) (*float64, error) {
	args := m.Called(ctx, itemID)
	avg, _ := args.Get(0).(*float64)
	return avg, args.Error(1)
}

func (m *ReviewRepoMock) ListByItemID(ctx context.Context, itemID string) ([]model.Review, error) {
	args := m.Called(ctx, itemID)
	reviews, _ := args.Get(0).([]model.Review)
	return reviews, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// =====================
// Txのスタブ（そのままfnを実行するだけ）
// =====================

type txReposStub struct {
	items      repo.ItemRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	reviews    repo.ReviewRepository
}

func (r *txReposStub) Items() repo.ItemRepository           { return r.items }
func (r *txReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposStub) Reviews() repo.ReviewRepository       { return r.reviews }

type txManagerStub struct {
	repos repo.TxRepos
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// 部品のスタブ
// =====================

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return "id-" + string(rune('0'+g.n))
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

// =====================
// ヘルパー
// =====================

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

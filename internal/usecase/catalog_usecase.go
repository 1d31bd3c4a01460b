package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 商品一覧は4件ずつ
const ItemPageSize = 4

type CatalogUsecase struct {
	itemRepo  repo.ItemRepository
	auditRepo repo.AuditLogRepository
	idGen     IDGenerator
}

// DI
func NewCatalogUsecase(
	itemRepo repo.ItemRepository,
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
) *CatalogUsecase {
	return &CatalogUsecase{
		itemRepo:  itemRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
	}
}

// GET /itemsの入力DTO
type ListItemsInput struct {
	Category string // カテゴリコード or "All" or 空
	Sort     string // title | category | discount_price | rating
	Page     int
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *CatalogUsecase) ListItems(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if in.Page < 1 {
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}

	var category model.Category
	switch in.Category {
	case "", "All":
		// 全カテゴリ
	default:
		category = model.Category(in.Category)
		if !model.ValidCategory(category) {
			return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
	}

	switch in.Sort {
	case "", "title", "category", "discount_price", "rating":
	default:
		return ItemListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.itemRepo.List(ctx, repo.ItemListQuery{
		Category: category,
		Sort:     in.Sort,
		Page:     in.Page,
		Limit:    ItemPageSize,
	})
	if err != nil {
		return ItemListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ItemListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: ItemPageSize,
	}, nil
}

func (u *CatalogUsecase) GetItemBySlug(ctx context.Context, slug string) (model.Item, error) {
	if strings.TrimSpace(slug) == "" {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	item, err := u.itemRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return item, nil
}

type AdminSaveItemInput struct {
	Title       string
	Category    string
	Description string
	Price       decimal.Decimal
	Discount    int
	Slug        string
}

// 保存前バリデーション。価格負・割引範囲外はここで弾く（変更前に拒否）。
func validateItemInput(in AdminSaveItemInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if !model.ValidCategory(model.Category(in.Category)) {
		return NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return NewHTTPError(http.StatusBadRequest, "discount must be 0-100")
	}
	return nil
}

func (u *CatalogUsecase) AdminCreateItem(ctx context.Context, adminUserID string, in AdminSaveItemInput) (string, error) {
	if adminUserID == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateItemInput(in); err != nil {
		return "", err
	}

	item := model.Item{
		ID:          u.idGen.NewID(),
		Title:       strings.TrimSpace(in.Title),
		Category:    model.Category(in.Category),
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Slug:        strings.TrimSpace(in.Slug),
	}
	//保存前にdiscount_priceを導出
	item.Recalculate()

	if err := u.itemRepo.Create(ctx, item); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（商品作成）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionCreateItem,
		ResourceType: model.AuditResourceItem,
		ResourceID:   item.ID,
		AfterJSON:    priceJSON(item),
	}); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return item.ID, nil
}

func (u *CatalogUsecase) AdminUpdateItem(ctx context.Context, adminUserID string, itemID string, in AdminSaveItemInput) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	if err := validateItemInput(in); err != nil {
		return err
	}

	//変更前の状態（before）
	before, err := u.itemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item := model.Item{
		ID:          itemID,
		Title:       strings.TrimSpace(in.Title),
		Category:    model.Category(in.Category),
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Slug:        strings.TrimSpace(in.Slug),
	}
	item.Recalculate()

	if err := u.itemRepo.Update(ctx, item); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（価格・割引の差分）
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateItem,
		ResourceType: model.AuditResourceItem,
		ResourceID:   itemID,
		BeforeJSON:   priceJSON(before),
		AfterJSON:    priceJSON(item),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func priceJSON(item model.Item) string {
	return fmt.Sprintf(`{"price":"%s","discount":%d,"discount_price":"%s"}`,
		item.Price.StringFixed(2), item.Discount, item.DiscountPrice.StringFixed(2))
}

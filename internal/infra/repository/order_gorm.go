package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresの一意制約違反
const pgUniqueViolation = "23505"

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// ユーザーの未払い注文（カート）を取得
func (r *OrderGormRepository) FindOpenByUserID(ctx context.Context, userID string) (model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_paid = ?", userID, false).
		Order("created_at asc").
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// ユーザーの未払い注文を取得し、無ければ作成
func (r *OrderGormRepository) GetOrCreateOpenByUserID(ctx context.Context, userID string, newID string) (model.Order, error) {
	var order model.Order

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND is_paid = ?", userID, false).
			Order("created_at asc").
			First(&order).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		newOrder := model.Order{
			ID:     newID,
			UserID: userID,
			IsPaid: false,
		}

		// INSERTはSAVEPOINTで包む。部分一意インデックス
		// （user_id WHERE is_paid=false）に負けてもトランザクション全体を
		// 中断させず、既存の未払い注文を取り直せるようにする。
		createErr := tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(&newOrder).Error
		})
		if createErr != nil {
			// 同時リクエストに先を越されたら作成済みの方を返す
			var pgErr *pgconn.PgError
			if errors.As(createErr, &pgErr) && pgErr.Code == pgUniqueViolation {
				retryErr := tx.
					Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("user_id = ? AND is_paid = ?", userID, false).
					Order("created_at asc").
					First(&order).Error
				if retryErr == nil {
					return nil
				}
			}
			return createErr
		}

		order = newOrder
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// 未払い注文を支払済みにし、配送先を確定する
func (r *OrderGormRepository) MarkPaid(ctx context.Context, orderID string, shipTo string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND is_paid = ?", orderID, false).
		Updates(map[string]interface{}{
			"is_paid": true,
			"ship_to": shipTo,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 支払済み注文の一覧（新しい順）
func (r *OrderGormRepository) ListPaidByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_paid = ?", userID, true).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}

	return orders, nil
}

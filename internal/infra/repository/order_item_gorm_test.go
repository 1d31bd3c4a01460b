package repository_test

import (
	"context"
	"testing"
	"time"

	infra "shop/internal/infra/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 発行SQLを記録するだけのロガー
type sqlRecorder struct {
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.sqls = append(r.sqls, sql)
}

// 接続せずにSQLだけ組み立てるDB（DryRun）
func newDryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open(""), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)
	return db
}

// 明細追加は1文のupsert。途中でトランザクションを
// 中断させる余地のあるSELECT→INSERT→リトライ構成にしない。
func TestAddOneIssuesSingleUpsert(t *testing.T) {
	rec := &sqlRecorder{}
	repo := infra.NewOrderItemGormRepository(newDryRunDB(t, rec))

	err := repo.AddOne(context.Background(), "line-1", "order-1", "item-1")

	assert.NoError(t, err)
	require.Len(t, rec.sqls, 1)

	sql := rec.sqls[0]
	assert.Contains(t, sql, `INSERT INTO "order_items"`)
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, `"order_id"`)
	assert.Contains(t, sql, `"item_id"`)
	assert.Contains(t, sql, "DO UPDATE")
	assert.Contains(t, sql, "order_items.amount + 1")
}

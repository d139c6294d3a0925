package db

import (
	"gorm.io/gorm"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	err := d.AutoMigrate(
		&model.Item{},
		&model.Order{},
		&model.OrderItem{},
		&model.BillingAddress{},
	)
	if err != nil {
		return err
	}

	// 每個用戶同時只能有一張未結帳訂單，用 partial unique index 強制
	return d.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_open_per_user
		ON orders (user_id) WHERE is_ordered = false AND deleted_at IS NULL`).Error
}

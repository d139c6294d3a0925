package db

import (
	"context"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
)

// 地址的創建與去重由 OrderRepo.AttachCheckout 在結帳transaction內處理
type IBillingAddressRepository interface {
	ListAddressesByUserID(ctx context.Context, userID int) ([]model.BillingAddress, error)
}

type BillingAddressRepo struct {
	db *DbDao
}

func NewBillingAddressRepo(db *DbDao) *BillingAddressRepo {
	return &BillingAddressRepo{db: db}
}

// ListAddressesByUserID - 查詢用戶所有帳單地址
func (s *BillingAddressRepo) ListAddressesByUserID(ctx context.Context, userID int) ([]model.BillingAddress, error) {
	var addresses []model.BillingAddress
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}

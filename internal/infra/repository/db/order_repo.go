package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
)

var (
	// ErrOrderNotFound 訂單不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderItemNotFound 訂單內無此商品
	ErrOrderItemNotFound = errors.New("order item not found")
)

type IOrderRepository interface {
	GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error)
	GetOpenOrder(ctx context.Context, userID int) (*model.Order, error)
	GetOrCreateOpenOrder(ctx context.Context, userID int) (*model.Order, error)
	AddSingleItem(ctx context.Context, orderID, itemID uint) error
	RemoveSingleItem(ctx context.Context, orderID, itemID uint) error
	RemoveItem(ctx context.Context, orderID, itemID uint) error
	AttachCheckout(ctx context.Context, orderID uint, address *model.BillingAddress, paymentOption string) (*model.BillingAddress, error)
	HardDeleteOrder(ctx context.Context, orderID uint) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Read - 根據ID查詢訂單，連同訂單商品
func (s *OrderRepo) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems.Item").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 查詢用戶當前未結帳訂單 (購物車)
func (s *OrderRepo) GetOpenOrder(ctx context.Context, userID int) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).Preload("OrderItems.Item").
		Where("user_id = ? AND is_ordered = false", userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 查詢用戶未結帳訂單，不存在則創建
// partial unique index 保證同個用戶併發創建只會成功一筆
func (s *OrderRepo) GetOrCreateOpenOrder(ctx context.Context, userID int) (*model.Order, error) {
	// 不能用struct條件，gorm會忽略 IsOrdered 的零值
	var order model.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_ordered = false", userID).
		Attrs(model.Order{UserID: userID}).
		FirstOrCreate(&order).Error
	if err != nil {
		// 併發首次加入時輸的一方會撞 unique index，改讀贏家創建的那筆
		if fetchErr := s.db.WithContext(ctx).
			Where("user_id = ? AND is_ordered = false", userID).
			First(&order).Error; fetchErr != nil {
			return nil, err
		}
	}
	return s.GetOrderByID(ctx, order.OrderID)
}

// AddSingleItem 加一件商品進購物車
// 商品不存在回傳 ErrItemNotFound，無庫存回傳 ErrItemOutOfStock
// 扣庫存與訂單商品更新在同一個transaction內
func (s *OrderRepo) AddSingleItem(ctx context.Context, orderID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		// 條件式扣庫存，stock > 0 避免併發扣成負數
		res := tx.Model(&model.Item{}).
			Where("item_id = ? AND stock > 0", itemID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemOutOfStock
		}

		var orderItem model.OrderItem
		err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&orderItem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 同一個 (order, item) 只會有一筆，重複加入只加數量
			return tx.Create(&model.OrderItem{OrderID: orderID, ItemID: itemID, Quantity: 1}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND item_id = ?", orderID, itemID).
			Update("quantity", gorm.Expr("quantity + 1")).Error
	})
}

// RemoveSingleItem 從購物車移除一件商品並歸還一件庫存
// 數量減到 0 時直接刪除該筆訂單商品
func (s *OrderRepo) RemoveSingleItem(ctx context.Context, orderID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderItem model.OrderItem
		err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&orderItem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderItemNotFound
		}
		if err != nil {
			return err
		}

		if orderItem.Quantity > 1 {
			err = tx.Model(&model.OrderItem{}).
				Where("order_id = ? AND item_id = ?", orderID, itemID).
				Update("quantity", gorm.Expr("quantity - 1")).Error
		} else {
			err = tx.Unscoped().
				Where("order_id = ? AND item_id = ?", orderID, itemID).
				Delete(&model.OrderItem{}).Error
		}
		if err != nil {
			return err
		}

		// 歸還庫存
		return tx.Model(&model.Item{}).
			Where("item_id = ?", itemID).
			Update("stock", gorm.Expr("stock + 1")).Error
	})
}

// RemoveItem 從購物車整筆移除商品，按數量歸還庫存
func (s *OrderRepo) RemoveItem(ctx context.Context, orderID, itemID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderItem model.OrderItem
		err := tx.Where("order_id = ? AND item_id = ?", orderID, itemID).First(&orderItem).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderItemNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("order_id = ? AND item_id = ?", orderID, itemID).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Item{}).
			Where("item_id = ?", itemID).
			Update("stock", gorm.Expr("stock + ?", orderItem.Quantity)).Error
	})
}

// AttachCheckout 結帳時解析帳單地址並掛上訂單
// 地址去重與訂單更新在同一個transaction內，中途失敗不會留下沒掛上的孤兒地址
// 同用戶、同內容的地址只會有一筆，完全相同則重用
func (s *OrderRepo) AttachCheckout(ctx context.Context, orderID uint, address *model.BillingAddress, paymentOption string) (*model.BillingAddress, error) {
	var attached model.BillingAddress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(model.BillingAddress{
			UserID:        address.UserID,
			StreetAddress: address.StreetAddress,
			Country:       address.Country,
			Zip:           address.Zip,
		}).FirstOrCreate(&attached).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Order{}).
			Where("order_id = ? AND is_ordered = false", orderID).
			Updates(map[string]interface{}{
				"billing_address_id": attached.BillingAddressID,
				"payment_option":     paymentOption,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &attached, nil
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, orderID uint) error {
	return s.db.WithContext(ctx).Unscoped().Select("OrderItems").Delete(&model.Order{OrderID: orderID}).Error
}

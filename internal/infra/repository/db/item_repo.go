package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
)

var (
	// ErrItemNotFound 商品不存在
	ErrItemNotFound = errors.New("item not found")
	// ErrItemOutOfStock 商品庫存不足
	ErrItemOutOfStock = errors.New("item out of stock")
)

type IItemRepository interface {
	CreateItem(ctx context.Context, item *model.Item) error
	GetItemByID(ctx context.Context, itemID uint) (*model.Item, error)
	GetItemBySlug(ctx context.Context, slug string) (*model.Item, error)
	GetItemsInStock(ctx context.Context) ([]model.Item, error)
	GetItemsPaginated(ctx context.Context, page, pageSize int) ([]model.Item, int64, error)
	UpdateItem(ctx context.Context, item *model.Item) error
	HardDeleteItem(ctx context.Context, itemID uint) error
}

type ItemRepo struct {
	db *DbDao
}

func NewItemRepo(db *DbDao) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create - 創建商品，slug 為空時由 title 產生 (model hook)
func (s *ItemRepo) CreateItem(ctx context.Context, item *model.Item) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Read - 根據ID查詢商品
func (s *ItemRepo) GetItemByID(ctx context.Context, itemID uint) (*model.Item, error) {
	var item model.Item
	err := s.db.WithContext(ctx).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Read - 根據slug查詢商品
func (s *ItemRepo) GetItemBySlug(ctx context.Context, slug string) (*model.Item, error) {
	var item model.Item
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Read - 查詢有庫存的商品
func (s *ItemRepo) GetItemsInStock(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := s.db.WithContext(ctx).Where("stock > 0").Find(&items).Error
	return items, err
}

// 分頁查詢商品
func (s *ItemRepo) GetItemsPaginated(ctx context.Context, page, pageSize int) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	// 計算總數
	if err := s.db.WithContext(ctx).Model(&model.Item{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分頁查詢
	err := s.db.WithContext(ctx).Order("item_id").Offset(offset).Limit(pageSize).Find(&items).Error

	return items, total, err
}

// Update - 更新商品
func (s *ItemRepo) UpdateItem(ctx context.Context, item *model.Item) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// Delete - 硬刪除商品
func (s *ItemRepo) HardDeleteItem(ctx context.Context, itemID uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Item{}, itemID).Error
}

package service

import (
	"context"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
)

// 商品列表每頁固定8筆
const CatalogPageSize = 8

type ICatalogService interface {
	CreateItem(ctx context.Context, item *model.Item) error
	GetItemBySlug(ctx context.Context, slug string) (*model.Item, error)
	ListItems(ctx context.Context, page int) ([]model.Item, int64, error)
	ListItemsInStock(ctx context.Context) ([]model.Item, error)
}

type CatalogService struct {
	itemRepo db.IItemRepository
}

func NewCatalogService(itemRepo db.IItemRepository) *CatalogService {
	return &CatalogService{itemRepo: itemRepo}
}

// CreateItem 營運人員上架商品
func (s *CatalogService) CreateItem(ctx context.Context, item *model.Item) error {
	return s.itemRepo.CreateItem(ctx, item)
}

func (s *CatalogService) GetItemBySlug(ctx context.Context, slug string) (*model.Item, error) {
	return s.itemRepo.GetItemBySlug(ctx, slug)
}

// ListItems 分頁查詢商品
func (s *CatalogService) ListItems(ctx context.Context, page int) ([]model.Item, int64, error) {
	return s.itemRepo.GetItemsPaginated(ctx, page, CatalogPageSize)
}

func (s *CatalogService) ListItemsInStock(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.GetItemsInStock(ctx)
}

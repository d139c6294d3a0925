package service

import (
	"context"
	"log"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/producer"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
)

type ICartService interface {
	GetOpenOrder(ctx context.Context, userID int) (*model.Order, error)
	AddSingleItem(ctx context.Context, userID int, itemID uint) error
	RemoveSingleItem(ctx context.Context, userID int, itemID uint) error
	RemoveItem(ctx context.Context, userID int, itemID uint) error
}

// 購物車就是用戶當前未結帳的訂單，第一次加入商品時才創建
type CartService struct {
	orderRepo     db.IOrderRepository
	eventProducer producer.IOrderEventProducer
}

func NewCartService(orderRepo db.IOrderRepository, eventProducer producer.IOrderEventProducer) *CartService {
	return &CartService{orderRepo: orderRepo, eventProducer: eventProducer}
}

func (s *CartService) GetOpenOrder(ctx context.Context, userID int) (*model.Order, error) {
	return s.orderRepo.GetOpenOrder(ctx, userID)
}

// AddSingleItem 加一件商品進用戶購物車
// 商品不存在回傳 db.ErrItemNotFound，無庫存回傳 db.ErrItemOutOfStock
// 由caller決定要不要吞掉
func (s *CartService) AddSingleItem(ctx context.Context, userID int, itemID uint) error {
	order, err := s.orderRepo.GetOrCreateOpenOrder(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.AddSingleItem(ctx, order.OrderID, itemID); err != nil {
		return err
	}

	s.produceEvent(ctx, producer.OrderEventItemAdded, userID, order.OrderID, itemID)
	return nil
}

// RemoveSingleItem 移除一件商品，購物車沒這個商品回傳 db.ErrOrderItemNotFound
func (s *CartService) RemoveSingleItem(ctx context.Context, userID int, itemID uint) error {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.RemoveSingleItem(ctx, order.OrderID, itemID); err != nil {
		return err
	}

	s.produceEvent(ctx, producer.OrderEventItemRemoved, userID, order.OrderID, itemID)
	return nil
}

// RemoveItem 整筆移除商品
func (s *CartService) RemoveItem(ctx context.Context, userID int, itemID uint) error {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.RemoveItem(ctx, order.OrderID, itemID); err != nil {
		return err
	}

	s.produceEvent(ctx, producer.OrderEventItemCleared, userID, order.OrderID, itemID)
	return nil
}

// 事件發送失敗只記log，不影響購物車操作
func (s *CartService) produceEvent(ctx context.Context, event producer.OrderEvent, userID int, orderID, itemID uint) {
	if s.eventProducer == nil {
		return
	}

	var err error
	switch event {
	case producer.OrderEventItemAdded:
		err = s.eventProducer.ProduceCartItemAdded(ctx, userID, orderID, itemID)
	case producer.OrderEventItemRemoved:
		err = s.eventProducer.ProduceCartItemRemoved(ctx, userID, orderID, itemID)
	case producer.OrderEventItemCleared:
		err = s.eventProducer.ProduceCartItemCleared(ctx, userID, orderID, itemID)
	}
	if err != nil {
		log.Printf("produce %s event failed: %v", event, err)
	}
}

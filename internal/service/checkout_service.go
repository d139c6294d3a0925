package service

import (
	"context"
	"errors"
	"log"

	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/producer"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/redis_repo"
)

var (
	// ErrEmptyCart 購物車是空的，不能進結帳流程
	ErrEmptyCart = errors.New("cart is empty")
)

type CheckoutSubmission struct {
	StreetAddress string
	Country       string
	Zip           string
	PaymentOption string
}

type ICheckoutService interface {
	GetCheckoutOrder(ctx context.Context, userID int) (*model.Order, error)
	ListSavedAddresses(ctx context.Context, userID int) ([]model.BillingAddress, error)
	SubmitCheckout(ctx context.Context, userID int, sessionID string, submission CheckoutSubmission) (*redis_repo.PaymentIntentRecord, error)
}

type CheckoutService struct {
	orderRepo      db.IOrderRepository
	addressRepo    db.IBillingAddressRepository
	paymentService IPaymentService
	eventProducer  producer.IOrderEventProducer
}

func NewCheckoutService(
	orderRepo db.IOrderRepository,
	addressRepo db.IBillingAddressRepository,
	paymentService IPaymentService,
	eventProducer producer.IOrderEventProducer,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:      orderRepo,
		addressRepo:    addressRepo,
		paymentService: paymentService,
		eventProducer:  eventProducer,
	}
}

// GetCheckoutOrder 結帳入口守衛，GET與POST每次都要檢查
// 沒有未結帳訂單回傳 db.ErrOrderNotFound，空購物車回傳 ErrEmptyCart
func (s *CheckoutService) GetCheckoutOrder(ctx context.Context, userID int) (*model.Order, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order.TotalCount() == 0 {
		return nil, ErrEmptyCart
	}
	return order, nil
}

// ListSavedAddresses 用戶既有的帳單地址，給結帳表單預填
func (s *CheckoutService) ListSavedAddresses(ctx context.Context, userID int) ([]model.BillingAddress, error) {
	return s.addressRepo.ListAddressesByUserID(ctx, userID)
}

// SubmitCheckout 掛上帳單地址與付款方式後觸發 payment bridge
// 地址去重與訂單更新由repo在同一個transaction內完成
// 付款處理商失敗直接往上拋，購物車與地址異動保留，讓用戶能重試付款
func (s *CheckoutService) SubmitCheckout(ctx context.Context, userID int, sessionID string, submission CheckoutSubmission) (*redis_repo.PaymentIntentRecord, error) {
	order, err := s.GetCheckoutOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.orderRepo.AttachCheckout(ctx, order.OrderID, &model.BillingAddress{
		UserID:        userID,
		StreetAddress: submission.StreetAddress,
		Country:       submission.Country,
		Zip:           submission.Zip,
	}, submission.PaymentOption); err != nil {
		return nil, err
	}

	record, err := s.paymentService.CreateOrUpdateIntent(ctx, sessionID, order.TotalPrice())
	if err != nil {
		return nil, err
	}

	if s.eventProducer != nil {
		if err := s.eventProducer.ProduceCheckoutSubmitted(ctx, userID, order.OrderID); err != nil {
			log.Printf("produce checkout_submitted event failed: %v", err)
		}
	}

	return record, nil
}

package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/spacyk/eshop-recipe/internal/infra/payment"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/redis_repo"
)

// 處理商金額是最小貨幣單位整數 (分)，小數點後直接截斷
var minorUnitFactor = decimal.NewFromInt(100)

type IPaymentService interface {
	CreateOrUpdateIntent(ctx context.Context, sessionID string, total decimal.Decimal) (*redis_repo.PaymentIntentRecord, error)
	GetSessionIntent(ctx context.Context, sessionID string) (*redis_repo.PaymentIntentRecord, error)
}

type PaymentService struct {
	intentAPI  payment.IIntentAPI
	intentRepo redis_repo.IPaymentIntentRepository
	currency   string
}

func NewPaymentService(intentAPI payment.IIntentAPI, intentRepo redis_repo.IPaymentIntentRepository, currency string) *PaymentService {
	return &PaymentService{
		intentAPI:  intentAPI,
		intentRepo: intentRepo,
		currency:   currency,
	}
}

// MinorUnitAmount 訂單總金額換算處理商的最小貨幣單位
func MinorUnitAmount(total decimal.Decimal) int64 {
	return total.Mul(minorUnitFactor).IntPart()
}

// CreateOrUpdateIntent session 已有 intent 就直接改金額，否則開新的
// intent {client_secret, id} 存進 session 狀態，給前端確認付款用
// 處理商失敗直接往上拋，不重試
func (s *PaymentService) CreateOrUpdateIntent(ctx context.Context, sessionID string, total decimal.Decimal) (*redis_repo.PaymentIntentRecord, error) {
	amount := MinorUnitAmount(total)

	record, err := s.intentRepo.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, redis_repo.ErrIntentNotFound) {
		return nil, err
	}

	var intent *payment.Intent
	if record != nil {
		intent, err = s.intentAPI.UpdateIntentAmount(ctx, record.IntentID, amount)
	} else {
		intent, err = s.intentAPI.CreateIntent(ctx, amount, s.currency)
	}
	if err != nil {
		return nil, err
	}

	record = &redis_repo.PaymentIntentRecord{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}
	if err := s.intentRepo.Set(ctx, sessionID, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PaymentService) GetSessionIntent(ctx context.Context, sessionID string) (*redis_repo.PaymentIntentRecord, error) {
	return s.intentRepo.Get(ctx, sessionID)
}

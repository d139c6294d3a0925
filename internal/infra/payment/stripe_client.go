package payment

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Intent 付款處理商側的待扣款記錄
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

type IIntentAPI interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	UpdateIntentAmount(ctx context.Context, intentID string, amount int64) (*Intent, error)
}

type StripeClient struct {
	intents *paymentintent.Client
}

func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{
		intents: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: apiKey,
		},
	}
}

func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx

	pi, err := c.intents.New(params)
	if err != nil {
		return nil, err
	}
	return convertPaymentIntent(pi), nil
}

// UpdateIntentAmount 直接修改處理商側 intent 的金額
func (c *StripeClient) UpdateIntentAmount(ctx context.Context, intentID string, amount int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(amount),
	}
	params.Context = ctx

	pi, err := c.intents.Update(intentID, params)
	if err != nil {
		return nil, err
	}
	return convertPaymentIntent(pi), nil
}

func convertPaymentIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

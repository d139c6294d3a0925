package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacyk/eshop-recipe/internal/constants"
	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/redis_repo"
	"github.com/spacyk/eshop-recipe/internal/service"
)

type fakeCheckoutService struct {
	order     *model.Order
	guardErr  error
	submitErr error
	record    *redis_repo.PaymentIntentRecord
}

func (f *fakeCheckoutService) GetCheckoutOrder(ctx context.Context, userID int) (*model.Order, error) {
	if f.guardErr != nil {
		return nil, f.guardErr
	}
	return f.order, nil
}

func (f *fakeCheckoutService) ListSavedAddresses(ctx context.Context, userID int) ([]model.BillingAddress, error) {
	return nil, nil
}

func (f *fakeCheckoutService) SubmitCheckout(ctx context.Context, userID int, sessionID string, submission service.CheckoutSubmission) (*redis_repo.PaymentIntentRecord, error) {
	if f.guardErr != nil {
		return nil, f.guardErr
	}
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.record, nil
}

type fakePaymentServiceStub struct {
	record *redis_repo.PaymentIntentRecord
}

func (f *fakePaymentServiceStub) CreateOrUpdateIntent(ctx context.Context, sessionID string, total decimal.Decimal) (*redis_repo.PaymentIntentRecord, error) {
	return f.record, nil
}

func (f *fakePaymentServiceStub) GetSessionIntent(ctx context.Context, sessionID string) (*redis_repo.PaymentIntentRecord, error) {
	if f.record == nil {
		return nil, redis_repo.ErrIntentNotFound
	}
	return f.record, nil
}

func newCheckoutRouter(checkoutService service.ICheckoutService, paymentService service.IPaymentService) *chi.Mux {
	h := NewCheckoutHandler(checkoutService, paymentService)
	r := chi.NewRouter()
	r.Get("/checkout", h.GetCheckout)
	r.Post("/checkout", h.SubmitCheckout)
	r.Get("/payment/{paymentOption}", h.GetPayment)
	return r
}

func doRequest(r *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reqBody)
	ctx := context.WithValue(req.Context(), constants.UserIDKey, 7)
	ctx = context.WithValue(ctx, constants.SessionIDKey, "session-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestGetCheckout_EmptyCartRedirectsHome(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutService{guardErr: service.ErrEmptyCart}, &fakePaymentServiceStub{})

	rec := doRequest(router, http.MethodGet, "/checkout", "")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestGetCheckout_NoOpenOrderRedirectsHome(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutService{guardErr: db.ErrOrderNotFound}, &fakePaymentServiceStub{})

	rec := doRequest(router, http.MethodGet, "/checkout", "")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSubmitCheckout_ValidationFailure(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutService{}, &fakePaymentServiceStub{})

	body := `{"street_address":"","country":"Taiwan","zip":"110","payment_option":"paypal"}`
	rec := doRequest(router, http.MethodPost, "/checkout", body)

	// 驗證失敗什麼都不落地，帶欄位錯誤回 400
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "StreetAddress")
	assert.Contains(t, rec.Body.String(), "Country")
	assert.Contains(t, rec.Body.String(), "PaymentOption")
}

func TestSubmitCheckout_RedirectsToPayment(t *testing.T) {
	checkoutService := &fakeCheckoutService{
		record: &redis_repo.PaymentIntentRecord{IntentID: "pi_1", ClientSecret: "secret"},
	}
	router := newCheckoutRouter(checkoutService, &fakePaymentServiceStub{})

	body := `{"street_address":"Street 123","country":"TW","zip":"110","payment_option":"stripe"}`
	rec := doRequest(router, http.MethodPost, "/checkout", body)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/payment/stripe", rec.Header().Get("Location"))
}

func TestGetPayment_UnsupportedOption(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutService{order: &model.Order{OrderID: 1}}, &fakePaymentServiceStub{})

	rec := doRequest(router, http.MethodGet, "/payment/paypal", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPayment_ReturnsSessionIntent(t *testing.T) {
	payment := &fakePaymentServiceStub{
		record: &redis_repo.PaymentIntentRecord{IntentID: "pi_1", ClientSecret: "pi_1_secret"},
	}
	router := newCheckoutRouter(&fakeCheckoutService{order: &model.Order{OrderID: 1}}, payment)

	rec := doRequest(router, http.MethodGet, "/payment/stripe", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pi_1_secret")
}

func TestGetPayment_NoIntentRedirectsToCheckout(t *testing.T) {
	router := newCheckoutRouter(&fakeCheckoutService{order: &model.Order{OrderID: 1}}, &fakePaymentServiceStub{})

	rec := doRequest(router, http.MethodGet, "/payment/stripe", "")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spacyk/eshop-recipe/internal/api/apiutil"
	"github.com/spacyk/eshop-recipe/internal/api/dto"
	"github.com/spacyk/eshop-recipe/internal/api/middleware"
	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/redis_repo"
	"github.com/spacyk/eshop-recipe/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
	paymentService  service.IPaymentService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService, paymentService service.IPaymentService) *CheckoutHandler {
	if checkoutService == nil || paymentService == nil {
		panic("checkoutService and paymentService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
		paymentService:  paymentService,
	}
}

type orderSummaryResponse struct {
	Order      *model.Order `json:"order"`
	TotalPrice string       `json:"total_price"`
	TotalCount int          `json:"total_count"`
}

type checkoutPageResponse struct {
	orderSummaryResponse
	SavedAddresses []model.BillingAddress `json:"saved_addresses"`
}

// GetCheckout 結帳頁資料，連同用戶既有地址給表單預填
// 沒有購物車或購物車是空的直接導回首頁，每次進入都重新檢查
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	order, err := h.checkoutService.GetCheckoutOrder(r.Context(), userID)
	if h.redirectIfNotCheckoutable(w, r, err) {
		return
	}
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	addresses, err := h.checkoutService.ListSavedAddresses(r.Context(), userID)
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	apiutil.SuccessJSON(w, checkoutPageResponse{
		orderSummaryResponse: orderSummaryResponse{
			Order:      order,
			TotalPrice: order.TotalPrice().StringFixed(2),
			TotalCount: order.TotalCount(),
		},
		SavedAddresses: addresses,
	})
}

// SubmitCheckout 結帳表單提交
// 驗證失敗回 400 與欄位錯誤，什麼都不落地
// 成功後導去對應付款方式的確認頁
func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID := middleware.GetSessionID(r.Context())

	var form dto.CheckoutFormDTO
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		apiutil.ErrorJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	fieldErrs, err := form.Validate()
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	if fieldErrs != nil {
		apiutil.ErrorJSON(w, http.StatusBadRequest, "validation failed", fieldErrs)
		return
	}

	_, err = h.checkoutService.SubmitCheckout(r.Context(), userID, sessionID, service.CheckoutSubmission{
		StreetAddress: form.StreetAddress,
		Country:       form.Country,
		Zip:           form.Zip,
		PaymentOption: form.PaymentOption,
	})
	if h.redirectIfNotCheckoutable(w, r, err) {
		return
	}
	if err != nil {
		// 付款處理商失敗不做補償，購物車保留讓用戶重試
		apiutil.ErrorJSON(w, http.StatusBadGateway, "payment processor error", nil)
		return
	}

	http.Redirect(w, r, "/payment/"+form.PaymentOption, http.StatusSeeOther)
}

// GetPayment 付款確認頁資料，回傳 session 內的 intent 給前端確認付款
func (h *CheckoutHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID := middleware.GetSessionID(r.Context())

	if chi.URLParam(r, "paymentOption") != model.PaymentOptionStripe {
		apiutil.ErrorJSON(w, http.StatusNotFound, "unsupported payment option", nil)
		return
	}

	_, err := h.checkoutService.GetCheckoutOrder(r.Context(), userID)
	if h.redirectIfNotCheckoutable(w, r, err) {
		return
	}
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	record, err := h.paymentService.GetSessionIntent(r.Context(), sessionID)
	if errors.Is(err, redis_repo.ErrIntentNotFound) {
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	apiutil.SuccessJSON(w, dto.PaymentIntentDTO{
		IntentID:     record.IntentID,
		ClientSecret: record.ClientSecret,
	})
}

// 沒有未結帳訂單或購物車是空的就導回首頁
func (h *CheckoutHandler) redirectIfNotCheckoutable(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, db.ErrOrderNotFound) || errors.Is(err, service.ErrEmptyCart) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return true
	}
	return false
}

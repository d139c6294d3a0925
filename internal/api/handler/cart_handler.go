package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/spacyk/eshop-recipe/internal/api/apiutil"
	"github.com/spacyk/eshop-recipe/internal/api/middleware"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// AddSingleItem 加一件商品進購物車後導回來源頁
// 商品不存在或沒庫存照樣導回，對用戶是靜默no-op
func (h *CartHandler) AddSingleItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.cartService.AddSingleItem)
}

// RemoveSingleItem 從購物車移除一件商品後導回來源頁
func (h *CartHandler) RemoveSingleItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.cartService.RemoveSingleItem)
}

// RemoveItem 整筆移除商品後導回來源頁
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.cartService.RemoveItem)
}

// GetCart 回傳購物車內容與總計
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	order, err := h.cartService.GetOpenOrder(r.Context(), userID)
	if errors.Is(err, db.ErrOrderNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	apiutil.SuccessJSON(w, orderSummaryResponse{
		Order:      order,
		TotalPrice: order.TotalPrice().StringFixed(2),
		TotalCount: order.TotalCount(),
	})
}

func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID int, itemID uint) error) {
	userID := middleware.GetUserID(r.Context())

	itemID, err := strconv.ParseUint(chi.URLParam(r, "itemID"), 10, 32)
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusBadRequest, "invalid item id", nil)
		return
	}

	err = op(r.Context(), userID, uint(itemID))
	switch {
	case err == nil:
	case errors.Is(err, db.ErrItemNotFound),
		errors.Is(err, db.ErrItemOutOfStock),
		errors.Is(err, db.ErrOrderNotFound),
		errors.Is(err, db.ErrOrderItemNotFound):
		// 靜默no-op，照樣導回
	default:
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	http.Redirect(w, r, nextURL(r), http.StatusSeeOther)
}

// nextURL 取 ?next= 指定的導回頁，只允許站內相對路徑
func nextURL(r *http.Request) string {
	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

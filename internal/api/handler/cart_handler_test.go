package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacyk/eshop-recipe/internal/constants"
	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
)

type fakeCartService struct {
	order   *model.Order
	mutErr  error
	itemIDs []uint
}

func (f *fakeCartService) GetOpenOrder(ctx context.Context, userID int) (*model.Order, error) {
	if f.order == nil {
		return nil, db.ErrOrderNotFound
	}
	return f.order, nil
}

func (f *fakeCartService) AddSingleItem(ctx context.Context, userID int, itemID uint) error {
	f.itemIDs = append(f.itemIDs, itemID)
	return f.mutErr
}

func (f *fakeCartService) RemoveSingleItem(ctx context.Context, userID int, itemID uint) error {
	f.itemIDs = append(f.itemIDs, itemID)
	return f.mutErr
}

func (f *fakeCartService) RemoveItem(ctx context.Context, userID int, itemID uint) error {
	f.itemIDs = append(f.itemIDs, itemID)
	return f.mutErr
}

func newCartRouter(cartService *fakeCartService) *chi.Mux {
	h := NewCartHandler(cartService)
	r := chi.NewRouter()
	r.Get("/cart", h.GetCart)
	r.Post("/cart/add/{itemID}", h.AddSingleItem)
	r.Post("/cart/remove-single/{itemID}", h.RemoveSingleItem)
	r.Post("/cart/remove/{itemID}", h.RemoveItem)
	return r
}

func doCartRequest(r *chi.Mux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), constants.UserIDKey, 7)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestAddSingleItem_RedirectsToNext(t *testing.T) {
	cartService := &fakeCartService{}
	router := newCartRouter(cartService)

	rec := doCartRequest(router, http.MethodPost, "/cart/add/3?next=/products/magic-sword-2000")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/magic-sword-2000", rec.Header().Get("Location"))
	assert.Equal(t, []uint{3}, cartService.itemIDs)
}

func TestAddSingleItem_OutOfStockIsSilent(t *testing.T) {
	cartService := &fakeCartService{mutErr: db.ErrItemOutOfStock}
	router := newCartRouter(cartService)

	rec := doCartRequest(router, http.MethodPost, "/cart/add/3?next=/products/magic-sword-2000")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/products/magic-sword-2000", rec.Header().Get("Location"))
}

func TestRemoveItem_NotInCartIsSilent(t *testing.T) {
	cartService := &fakeCartService{mutErr: db.ErrOrderItemNotFound}
	router := newCartRouter(cartService)

	rec := doCartRequest(router, http.MethodPost, "/cart/remove/9")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestMutate_InvalidItemID(t *testing.T) {
	router := newCartRouter(&fakeCartService{})

	rec := doCartRequest(router, http.MethodPost, "/cart/add/abc")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNextURL_RejectsOffsiteRedirect(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/products", "/products"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/cart?next="+tt.next, nil)
		assert.Equal(t, tt.want, nextURL(req), "next=%q", tt.next)
	}
}

func TestGetCart_NoOpenOrderRedirectsHome(t *testing.T) {
	router := newCartRouter(&fakeCartService{})

	rec := doCartRequest(router, http.MethodGet, "/cart")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spacyk/eshop-recipe/internal/api/apiutil"
	"github.com/spacyk/eshop-recipe/internal/domain/model"
	"github.com/spacyk/eshop-recipe/internal/infra/repository/db"
	"github.com/spacyk/eshop-recipe/internal/service"
)

type CatalogHandler struct {
	catalogService service.ICatalogService
}

func NewCatalogHandler(catalogService service.ICatalogService) *CatalogHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

type itemListResponse struct {
	Items []model.Item `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
}

// ListItems 商品列表，固定每頁8筆
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	items, total, err := h.catalogService.ListItems(r.Context(), page)
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	apiutil.SuccessJSON(w, itemListResponse{
		Items: items,
		Total: total,
		Page:  page,
	})
}

// GetItem 商品詳情，用slug查
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := h.catalogService.GetItemBySlug(r.Context(), slug)
	if errors.Is(err, db.ErrItemNotFound) {
		apiutil.ErrorJSON(w, http.StatusNotFound, "item not found", nil)
		return
	}
	if err != nil {
		apiutil.ErrorJSON(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	apiutil.SuccessJSON(w, item)
}

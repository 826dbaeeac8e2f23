package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradestock/backend/internal/domain/catalog"
	"github.com/gradestock/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the read side of the synced catalog
type CatalogHandler struct {
	BaseHandler
	products   catalog.MasterProductRepository
	categories catalog.CategoryRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products catalog.MasterProductRepository, categories catalog.CategoryRepository) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
	}
}

// ListProducts handles GET /catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid pagination parameters")
		return
	}

	offset := (req.Page - 1) * req.PageSize
	products, total, err := h.products.List(c.Request.Context(), req.Search, offset, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	h.SuccessWithMeta(c, out, total, req.Page, req.PageSize)
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.products.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(product))
}

// ListCategories handles GET /catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	if raw := c.Query("product_line_id"); raw != "" {
		lineID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, "invalid product line id")
			return
		}
		categories, err := h.categories.ListForProductLine(c.Request.Context(), lineID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, categories)
		return
	}

	categories, err := h.categories.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// RegisterRoutes registers catalog routes on the given router group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cat := rg.Group("/catalog")
	{
		cat.GET("/products", h.ListProducts)
		cat.GET("/products/:id", h.GetProduct)
		cat.GET("/categories", h.ListCategories)
	}
}

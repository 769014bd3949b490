package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @ID           listProducts
// @Summary      List the current user's products
// @Description  Products of every company owned by the authenticated user.
// @Tags         products
// @Produce      json
// @Param        search query string false "Name search"
// @Param        status query string false "Status" Enums(active, inactive)
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        company_id query string false "Company ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	products, total, err := h.productService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pagination(filter.ListFilter)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetByID godoc
// @ID           getProduct
// @Summary      Get a product with its complement IDs
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Edit godoc
// @ID           editProduct
// @Summary      Edit a product
// @Description  Omitted fields are left unchanged. complementsId attaches complements and keeps existing links.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.EditProductRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.EditProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RequestImageUpload godoc
// @ID           requestProductImageUpload
// @Summary      Get a presigned product image upload URL
// @Description  The returned key is stored on the product; the client PUTs the image to uploadUrl.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ImageUploadRequest true "Image"
// @Success      200 {object} APIResponse[catalogapp.ImageUploadResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/image [post]
func (h *ProductHandler) RequestImageUpload(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	upload, err := h.productService.RequestImageUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}

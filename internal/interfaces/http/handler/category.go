package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// CategoryHandler handles product category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @ID           createCategory
// @Summary      Create a product category
// @Description  Category names are unique per company; a duplicate answers 409 ALREADY_EXISTS.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListByCompany godoc
// @ID           listCompanyCategories
// @Summary      List a company's categories
// @Tags         categories
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        search query string false "Name search"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Security     BearerAuth
// @Router       /companies/{id}/categories [get]
func (h *CategoryHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.companyPathID(c)
	if !ok {
		return
	}
	var filter catalogapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	categories, total, err := h.categoryService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pagination(filter)
	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// GetByID godoc
// @ID           getCategory
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "category")
	if !ok {
		return
	}
	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Edit godoc
// @ID           editCategory
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body catalogapp.EditCategoryRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Edit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "category")
	if !ok {
		return
	}
	var req catalogapp.EditCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @ID           deleteCategory
// @Summary      Delete a category
// @Description  Products in the category are kept without a category.
// @Tags         categories
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "category")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

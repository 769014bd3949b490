package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// ItemHandler handles complement item endpoints
type ItemHandler struct {
	BaseHandler
	itemService *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create godoc
// @ID           createItem
// @Summary      Add items to a complement
// @Description  Items are created in request order, after any existing items.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemsRequest true "Items"
// @Success      201 {object} APIResponse[[]catalogapp.ComplementItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	items, err := h.itemService.CreateItems(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, items)
}

// Edit godoc
// @ID           editItem
// @Summary      Edit a complement item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body catalogapp.EditItemRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ComplementItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [put]
func (h *ItemHandler) Edit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "item")
	if !ok {
		return
	}
	var req catalogapp.EditItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.itemService.EditItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteItem
// @Summary      Delete a complement item
// @Tags         items
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "item")
	if !ok {
		return
	}
	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

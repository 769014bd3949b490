package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// ComplementHandler handles complement endpoints
type ComplementHandler struct {
	BaseHandler
	complementService *catalogapp.ComplementService
}

// NewComplementHandler creates a new ComplementHandler
func NewComplementHandler(complementService *catalogapp.ComplementService) *ComplementHandler {
	return &ComplementHandler{complementService: complementService}
}

// ComplementListQuery is the query of GET /companies/:id/complements
type ComplementListQuery struct {
	catalogapp.ListFilter
	Required *bool `form:"required"`
}

// ComplementEnvelope is the data of GET /complements/:id
type ComplementEnvelope struct {
	Complements catalogapp.ComplementResponse `json:"complements"`
}

// Create godoc
// @ID           createComplement
// @Summary      Create a complement
// @Description  Creates the complement with its items in one transaction and attaches it to the given products.
// @Tags         complements
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateComplementRequest true "Complement"
// @Success      201 {object} APIResponse[catalogapp.ComplementResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /complements [post]
func (h *ComplementHandler) Create(c *gin.Context) {
	var req catalogapp.CreateComplementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	complement, err := h.complementService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, complement)
}

// ListByCompany godoc
// @ID           listCompanyComplements
// @Summary      List a company's complements
// @Tags         complements
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        required query bool false "Only required (true) or optional (false) complements"
// @Param        search query string false "Name search"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ComplementResponse]
// @Security     BearerAuth
// @Router       /companies/{id}/complements [get]
func (h *ComplementHandler) ListByCompany(c *gin.Context) {
	companyID, ok := h.companyPathID(c)
	if !ok {
		return
	}
	var query ComplementListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	complements, total, err := h.complementService.List(c.Request.Context(), companyID, query.ListFilter, query.Required)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pagination(query.ListFilter)
	h.SuccessWithMeta(c, complements, total, page, pageSize)
}

// GetByID godoc
// @ID           getComplementsById
// @Summary      Get a complement with its items and product IDs
// @Tags         complements
// @Produce      json
// @Param        id path string true "Complement ID" format(uuid)
// @Success      200 {object} APIResponse[ComplementEnvelope]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /complements/{id} [get]
func (h *ComplementHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "complement")
	if !ok {
		return
	}
	complement, err := h.complementService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ComplementEnvelope{Complements: *complement})
}

// Edit godoc
// @ID           editComplement
// @Summary      Edit a complement
// @Description  Omitted fields are left unchanged. Items and product links are not touched.
// @Tags         complements
// @Accept       json
// @Produce      json
// @Param        id path string true "Complement ID" format(uuid)
// @Param        request body catalogapp.EditComplementRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ComplementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /complements/{id} [put]
func (h *ComplementHandler) Edit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "complement")
	if !ok {
		return
	}
	var req catalogapp.EditComplementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	complement, err := h.complementService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, complement)
}

// Delete godoc
// @ID           deleteComplement
// @Summary      Delete a complement
// @Description  Deletes its items and detaches it from every product.
// @Tags         complements
// @Param        id path string true "Complement ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /complements/{id} [delete]
func (h *ComplementHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "complement")
	if !ok {
		return
	}
	if err := h.complementService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *catalogapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *catalogapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CompanyListQuery is the query of GET /companies
type CompanyListQuery struct {
	catalogapp.ListFilter
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// Create godoc
// @ID           createCompany
// @Summary      Create a company
// @Description  Create a company owned by the current user. The slug is derived from the name when omitted.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCompanyRequest true "Company"
// @Success      201 {object} APIResponse[catalogapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// List godoc
// @ID           listCompanies
// @Summary      List the current user's companies
// @Tags         companies
// @Produce      json
// @Param        search query string false "Name search"
// @Param        status query string false "Status" Enums(ACTIVE, INACTIVE)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.CompanyResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var query CompanyListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	companies, total, err := h.companyService.ListForOwner(c.Request.Context(), userID, query.ListFilter, query.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pagination(query.ListFilter)
	h.SuccessWithMeta(c, companies, total, page, pageSize)
}

// GetByID godoc
// @ID           getCompany
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := h.companyPathID(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// GetBySlug godoc
// @ID           getCompanyBySlug
// @Summary      Get a company by slug
// @Tags         companies
// @Produce      json
// @Param        slug path string true "Company slug"
// @Success      200 {object} APIResponse[catalogapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/slug/{slug} [get]
func (h *CompanyHandler) GetBySlug(c *gin.Context) {
	company, err := h.companyService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// Edit godoc
// @ID           editCompany
// @Summary      Edit a company
// @Description  Each block (company, companyInfo, companyAddress) is optional; omitted blocks are left unchanged.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body catalogapp.EditCompanyRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{id} [put]
func (h *CompanyHandler) Edit(c *gin.Context) {
	id, ok := h.companyPathID(c)
	if !ok {
		return
	}
	var req catalogapp.EditCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}
	company, err := h.companyService.Edit(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// pagination returns the page and page size a list was served with
func pagination(f catalogapp.ListFilter) (int, int) {
	page, pageSize := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return page, pageSize
}

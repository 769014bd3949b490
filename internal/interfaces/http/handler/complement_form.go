package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/application/catalog/form"
	"github.com/menudash/backend/internal/interfaces/http/dto"
	"github.com/menudash/backend/internal/interfaces/http/middleware"
)

// Error codes of form submissions
const (
	CodeFormInvalid      = "FORM_INVALID"
	CodeFormSubmitFailed = "FORM_SUBMIT_FAILED"
)

// ComplementFormHandler serves the complement edit form
type ComplementFormHandler struct {
	BaseHandler
	editor *form.ComplementEditor
}

// NewComplementFormHandler creates a new ComplementFormHandler
func NewComplementFormHandler(editor *form.ComplementEditor) *ComplementFormHandler {
	return &ComplementFormHandler{editor: editor}
}

// FormStateResponse is a complement loaded into the form
type FormStateResponse struct {
	ComplementID string                              `json:"complementId"`
	Values       form.Values                         `json:"values"`
	Items        []catalogapp.ComplementItemResponse `json:"items"`
}

// Load godoc
// @ID           loadComplementForm
// @Summary      Load a complement into the edit form
// @Tags         complement-form
// @Produce      json
// @Param        id path string true "Complement ID" format(uuid)
// @Success      200 {object} APIResponse[FormStateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /complements/{id}/form [get]
func (h *ComplementFormHandler) Load(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "complement")
	if !ok {
		return
	}
	loaded, err := h.editor.Load(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, FormStateResponse{
		ComplementID: loaded.ComplementID.String(),
		Values:       loaded.Values,
		Items:        loaded.Items,
	})
}

// Submit godoc
// @ID           submitComplementForm
// @Summary      Submit the complement edit form
// @Description  Loads the complement, edits it, attaches it to each selected product and reconciles its
// @Description  items by position. Child calls are not rolled back; any failure yields one error notice.
// @Tags         complement-form
// @Accept       json
// @Produce      json
// @Param        id path string true "Complement ID" format(uuid)
// @Param        request body form.Values true "Form values"
// @Success      200 {object} APIResponse[form.Result]
// @Failure      400 {object} APIResponse[form.Result]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} APIResponse[form.Result]
// @Security     BearerAuth
// @Router       /complements/{id}/form [put]
func (h *ComplementFormHandler) Submit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "complement")
	if !ok {
		return
	}
	var values form.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	loaded, err := h.editor.Load(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.writeResult(c, h.editor.Submit(c.Request.Context(), loaded, values), http.StatusOK)
}

// Create godoc
// @ID           createComplementForm
// @Summary      Submit the complement form in create mode
// @Tags         complement-form
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID" format(uuid)
// @Param        request body form.Values true "Form values"
// @Success      201 {object} APIResponse[form.Result]
// @Failure      400 {object} APIResponse[form.Result]
// @Failure      422 {object} APIResponse[form.Result]
// @Security     BearerAuth
// @Router       /companies/{id}/complements/form [post]
func (h *ComplementFormHandler) Create(c *gin.Context) {
	companyID, ok := h.companyPathID(c)
	if !ok {
		return
	}
	var values form.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	h.writeResult(c, h.editor.Create(c.Request.Context(), companyID, values), http.StatusCreated)
}

// writeResult sends the form result as data, adding an error block when the
// submission did not go through
func (h *ComplementFormHandler) writeResult(c *gin.Context, result *form.Result, successStatus int) {
	if result.Succeeded() {
		c.JSON(successStatus, dto.NewSuccessResponse(result))
		return
	}

	status, code, message := http.StatusUnprocessableEntity, CodeFormSubmitFailed, form.MsgEditFailure
	if len(result.ValidationErrors) > 0 {
		status, code, message = http.StatusBadRequest, CodeFormInvalid, "Form validation failed"
	} else if len(result.Notices) > 0 {
		message = result.Notices[0].Message
	}

	resp := dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c))
	resp.Data = result
	c.JSON(status, resp)
}

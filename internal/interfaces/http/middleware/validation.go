package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/domain/shared/valueobject"
	"github.com/menudash/backend/internal/interfaces/http/dto"
)

// catalogValidations are the request tags beyond validator's built-ins
var catalogValidations = map[string]validator.Func{
	"slug": func(fl validator.FieldLevel) bool {
		return catalog.IsValidSlug(fl.Field().String())
	},
	"cnpj": func(fl validator.FieldLevel) bool {
		_, err := valueobject.NewCNPJ(fl.Field().String())
		return err == nil
	},
}

// SetupValidator configures gin's validator: errors name JSON (or form)
// fields, and the slug and cnpj tags are available to request types.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range catalogValidations {
		_ = v.RegisterValidation(tag, fn)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
	}
	return name
}

// FormatValidationErrors builds a VALIDATION_ERROR response from a binding
// error. Errors that are not field validations, such as malformed JSON,
// become the message with no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return dto.NewValidationErrorResponse(err.Error(), requestID, nil)
	}

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(fe),
			Message: validationMessage(fe),
			Tag:     fe.Tag(),
		})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, getRequestID(c)))
}

// fieldPath drops the root struct name: "Req.items[0].name" becomes "items[0].name"
func fieldPath(fe validator.FieldError) string {
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		return path
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice:
		unit = " entries"
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "uuid":
		return "Invalid UUID format"
	case "slug":
		return "Must contain only lowercase letters, numbers and dashes"
	case "cnpj":
		return "Invalid CNPJ"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param() + unit
	case "max":
		return "Must be at most " + fe.Param() + unit
	}
	return "Invalid value"
}

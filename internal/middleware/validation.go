package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/admissions/internal/app/models/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate decodes the JSON body into obj and validates it. On
// failure it writes a 400 response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format").WithDetails(err.Error())
		abortWithError(c, http.StatusBadRequest, detail)
		return false
	}

	if err := validate.Struct(obj); err != nil {
		abortWithError(c, http.StatusBadRequest, validationErrorDetail(err))
		return false
	}
	return true
}

// validationErrorDetail lists every failed field of a validator error
func validationErrorDetail(err error) *dto.ErrorDetail {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	}

	errs := dto.NewValidationErrors()
	for _, fe := range fieldErrors {
		errs.AddError(fe.Field(), formatValidationError(fe))
	}
	return errs.Detail()
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date formatted as YYYY-MM-DD"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

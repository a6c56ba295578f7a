package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

func abortWithError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoSeatsAvailable):
		abortWithError(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeNoSeatsAvailable, apperrors.ErrNoSeatsAvailable.Error()))
	case errors.Is(err, apperrors.ErrInvalidStatus):
		abortWithError(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeInvalidStatus, "status must be one of Applied, Shortlisted, Admitted, Rejected").
				WithField("status"))
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		abortWithError(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeDuplicateEmail, apperrors.ErrDuplicateEmail.Error()).WithField("email"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWithError(c, http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		abortWithError(c, http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()))
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		if field := apperrors.ValidationField(err); field != "" {
			detail = detail.WithField(field)
		}
		abortWithError(c, http.StatusBadRequest, detail)
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, err.Error()))
	default:
		logger.Error().Err(err).
			Str("requestID", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		abortWithError(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// Recovery turns a panic into a 500 response in the standard envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("requestID", GetRequestID(c)).
			Interface("panic", recovered).
			Msg("Recovered from panic")
		abortWithError(c, http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	})
}

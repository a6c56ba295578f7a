package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// parseIDParam reads a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name, name+" must be a positive number")
	}
	return id, nil
}

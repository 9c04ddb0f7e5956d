package handler

import (
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status via the apperror
// taxonomy and writes the standard error envelope.
func respondError(c *gin.Context, err error) {
	status := apperror.StatusCode(err)
	c.JSON(status, response.Error(status, err.Error()))
}

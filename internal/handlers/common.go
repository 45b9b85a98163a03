package handlers

import (
	"github.com/gin-gonic/gin"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
)

// respondError maps a service error onto the wire format. The error kind
// becomes the machine-readable code, the message is the user-facing text.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse{
		Error:   apperr.Kind(err),
		Message: err.Error(),
	})
}

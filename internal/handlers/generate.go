package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/services"
)

type GenerateHandler struct {
	generations *services.GenerationService
}

func NewGenerateHandler(generations *services.GenerationService) *GenerateHandler {
	return &GenerateHandler{generations: generations}
}

// Generate godoc
// @Summary     Generate a stylized pet portrait
// @Description Runs the generation pipeline on a previously uploaded photo and
// @Description returns the watermarked preview. The clean image stays private
// @Description until the order is paid.
// @Tags        generate
// @Accept      json
// @Produce     json
// @Param       request body models.GenerateRequest true "Storage path and style"
// @Success     200 {object} models.GenerateResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Requisição inválida"))
		return
	}

	result, err := h.generations.Generate(c.Request.Context(), req.StoragePath, req.Style)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success:          true,
		GenerationID:     result.GenerationID.String(),
		WatermarkedImage: result.WatermarkedURL,
	})
}

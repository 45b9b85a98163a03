package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fotofocinho-backend/internal/apperr"
	"fotofocinho-backend/internal/models"
	"fotofocinho-backend/internal/supabase"
)

const maxUploadBytes = 10 << 20

var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadHandler struct {
	storage *supabase.StorageClient
}

func NewUploadHandler(storage *supabase.StorageClient) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload godoc
// @Summary     Upload a pet photo
// @Description Stores the original pet photo in the originals bucket and
// @Description returns the storage path to use in the generate call.
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       image formData file true "Pet photo (JPEG, PNG or WebP, max 10MB)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Envie uma imagem no campo 'image'"))
		return
	}

	if file.Size > maxUploadBytes {
		respondError(c, apperr.New(apperr.ErrValidation, "Imagem muito grande. Máximo 10MB."))
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		respondError(c, apperr.New(apperr.ErrValidation, "Formato inválido. Use JPG, PNG ou WebP."))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Não foi possível ler a imagem"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		respondError(c, apperr.New(apperr.ErrValidation, "Não foi possível ler a imagem"))
		return
	}
	if len(data) > maxUploadBytes {
		respondError(c, apperr.New(apperr.ErrValidation, "Imagem muito grande. Máximo 10MB."))
		return
	}

	// Server-chosen path; the client never controls where originals land.
	storagePath := uuid.New().String() + "/original" + ext

	if err := h.storage.Upload(supabase.BucketOriginals, storagePath, data, contentType); err != nil {
		log.Printf("[upload] storage upload failed path=%s err=%v", storagePath, err)
		respondError(c, apperr.New(apperr.ErrUpstream, "Falha ao salvar a imagem"))
		return
	}

	resp := models.UploadResponse{
		Success:     true,
		StoragePath: storagePath,
		MimeType:    contentType,
	}

	// Originals live in a private bucket; hand out a short-lived preview URL.
	if signed, err := h.storage.SignedURL(supabase.BucketOriginals, storagePath, 3600); err == nil {
		resp.PublicURL = signed
	} else {
		log.Printf("[upload] signed url failed path=%s err=%v", storagePath, err)
	}

	c.JSON(http.StatusOK, resp)
}

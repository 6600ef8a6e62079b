package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/domains/magazine/service"
	"magazine-backend/internal/shared/crud"
	"magazine-backend/internal/shared/response"
	"magazine-backend/internal/shared/validate"
)

type UploadHandler struct {
	uploads *service.UploadService
}

func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
	}
}

// ════════════════════════════════════════════════════════════════
// UPLOAD: POST /photo/upload (multipart: magazine_key, image)
// ════════════════════════════════════════════════════════════════

func (h *UploadHandler) Upload(c *gin.Context) response.Result {
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", tooLarge.Limit).Msg("⚠️ Upload rejected: body too large")
			return response.Field("upload", "failed")
		}
		// Not multipart at all: report the first missing field.
		form = &multipart.Form{}
	}
	defer func() { _ = form.RemoveAll() }()

	fields := crud.Fields{}
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	key, err := validate.RequireKey(fields, model.KeyColumn)
	if err != nil {
		return response.FromError(err)
	}

	files := form.File[model.ImageField]
	if len(files) == 0 {
		return response.Field(model.ImageField, validate.NotSet)
	}

	staged, err := h.uploads.Stage(files[0])
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to stage upload")
		return response.Field("upload", "failed")
	}

	if err := validate.RequireTrue(service.AllowedImage(staged), model.ImageField, "jpg or png only"); err != nil {
		h.uploads.Discard(staged)
		return response.FromError(err)
	}

	path, err := h.uploads.Attach(c.Request.Context(), key, staged)
	switch {
	case errors.Is(err, service.ErrStoreFailed):
		log.Error().Err(err).Int64("magazine_key", key).Msg("❌ Failed to store upload")
		h.uploads.Discard(staged)
		return response.Field("upload", "failed")
	case err != nil:
		logStoreError(err, key, "upload")
		return response.Error("not updated")
	}

	log.Info().Str("image", path).Int64("magazine_key", key).Msg("✅ Magazine image updated")
	return response.OK("update", "success")
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"magazine-backend/internal/domains/author/model"
	"magazine-backend/internal/shared/crud"
	"magazine-backend/internal/shared/response"
	"magazine-backend/internal/shared/validate"
)

type AuthorHandler struct {
	authors crud.Repository[model.Author]
}

func NewAuthorHandler(authors crud.Repository[model.Author]) *AuthorHandler {
	return &AuthorHandler{
		authors: authors,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /author/add
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	if err := validate.RequirePresent(body, model.RequiredOnCreate...); err != nil {
		return response.FromError(err)
	}

	key, err := h.authors.Create(c.Request.Context(), body)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to create author")
		return response.Error("not created")
	}

	return response.OK("author_key", key)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: POST /author/update
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	key, err := validate.RequireKey(body, model.KeyColumn)
	if err != nil {
		return response.FromError(err)
	}

	if err := h.authors.Update(c.Request.Context(), key, body.Without(model.KeyColumn)); err != nil {
		logStoreError(err, key, "update")
		return response.Error("not updated")
	}

	return response.OK("update", "success")
}

// ════════════════════════════════════════════════════════════════
// DELETE: POST /author/delete
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	key, err := validate.RequireKey(body, model.KeyColumn)
	if err != nil {
		return response.FromError(err)
	}

	if err := h.authors.Delete(c.Request.Context(), key); err != nil {
		logStoreError(err, key, "delete")
		return response.Error("not deleted")
	}

	return response.OK("delete", "success")
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /author/list?page=1&perPage=20
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) response.Result {
	page, perPage, err := validate.Page(c)
	if err != nil {
		return response.FromError(err)
	}

	authors, err := h.authors.Read(c.Request.Context(), page, perPage)
	if err != nil {
		log.Error().Err(err).Int("page", page).Int("per_page", perPage).Msg("❌ Failed to list authors")
		return response.Error("not listed")
	}

	return response.OK("authors", authors)
}

// Missing rows and empty updates are client mistakes, not store failures.
func logStoreError(err error, key int64, op string) {
	if errors.Is(err, crud.ErrNotFound) || errors.Is(err, crud.ErrNothingToUpdate) {
		log.Warn().Err(err).Int64("author_key", key).Str("op", op).Msg("⚠️ Author not changed")
		return
	}
	log.Error().Err(err).Int64("author_key", key).Str("op", op).Msg("❌ Author store failure")
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"magazine-backend/internal/domains/magazine/model"
	"magazine-backend/internal/shared/crud"
	"magazine-backend/internal/shared/response"
	"magazine-backend/internal/shared/validate"
)

type MagazineHandler struct {
	magazines crud.Repository[model.Magazine]
}

func NewMagazineHandler(magazines crud.Repository[model.Magazine]) *MagazineHandler {
	return &MagazineHandler{
		magazines: magazines,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /magazine/add
// ════════════════════════════════════════════════════════════════

func (h *MagazineHandler) Create(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	if err := validate.RequirePresent(body, model.RequiredOnCreate...); err != nil {
		return response.FromError(err)
	}
	if _, err := validate.RequireKeySet(body, model.AuthorsField); err != nil {
		return response.FromError(err)
	}

	key, err := h.magazines.Create(c.Request.Context(), body)
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to create magazine")
		return response.Error("not created")
	}

	return response.OK("magazine_key", key)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: POST /magazine/update
// ════════════════════════════════════════════════════════════════

func (h *MagazineHandler) Update(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	key, err := validate.RequireKey(body, model.KeyColumn)
	if err != nil {
		return response.FromError(err)
	}

	if body.Has(model.AuthorsField) {
		if _, err := validate.RequireKeySet(body, model.AuthorsField); err != nil {
			return response.FromError(err)
		}
	}

	if err := h.magazines.Update(c.Request.Context(), key, body.Without(model.KeyColumn)); err != nil {
		logStoreError(err, key, "update")
		return response.Error("not updated")
	}

	return response.OK("update", "success")
}

// ════════════════════════════════════════════════════════════════
// DELETE: POST /magazine/delete
// ════════════════════════════════════════════════════════════════

func (h *MagazineHandler) Delete(c *gin.Context) response.Result {
	body, err := validate.BindObject(c)
	if err != nil {
		return response.FromError(err)
	}

	key, err := validate.RequireKey(body, model.KeyColumn)
	if err != nil {
		return response.FromError(err)
	}

	if err := h.magazines.Delete(c.Request.Context(), key); err != nil {
		logStoreError(err, key, "delete")
		return response.Error("not deleted")
	}

	return response.OK("delete", "success")
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /magazine/list?page=1&perPage=20
// ════════════════════════════════════════════════════════════════

func (h *MagazineHandler) List(c *gin.Context) response.Result {
	page, perPage, err := validate.Page(c)
	if err != nil {
		return response.FromError(err)
	}

	magazines, err := h.magazines.Read(c.Request.Context(), page, perPage)
	if err != nil {
		log.Error().Err(err).Int("page", page).Int("per_page", perPage).Msg("❌ Failed to list magazines")
		return response.Error("not listed")
	}

	return response.OK("magazines", magazines)
}

func logStoreError(err error, key int64, op string) {
	if errors.Is(err, crud.ErrNotFound) || errors.Is(err, crud.ErrNothingToUpdate) {
		log.Warn().Err(err).Int64("magazine_key", key).Str("op", op).Msg("⚠️ Magazine not changed")
		return
	}
	log.Error().Err(err).Int64("magazine_key", key).Str("op", op).Msg("❌ Magazine store failure")
}

// Package startupapi exposes the read-only JSON API over the startup
// listing.
package startupapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/api/common"
	"github.com/arkadem/startup-board/database/models"
	"github.com/arkadem/startup-board/internal/startups"
)

// startupDTO is the fixed output schema per record. The legacy "file"
// field mirrors the stored logo filename.
type startupDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Logo        *string `json:"logo"`
	File        *string `json:"file"`
}

func toDTO(s *models.Startup) startupDTO {
	return startupDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Logo:        s.Logo,
		File:        s.Logo,
	}
}

// Handler serves the read-only startup endpoints.
type Handler struct {
	startups *startups.Service
}

func NewHandler(startupsSvc *startups.Service) *Handler {
	return &Handler{startups: startupsSvc}
}

// List returns every startup.
func (h *Handler) List(c *gin.Context) {
	list, err := h.startups.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list startups")
		common.RespondError(c, http.StatusInternalServerError, "Failed to list startups")
		return
	}

	dtos := make([]startupDTO, 0, len(list))
	for _, s := range list {
		dtos = append(dtos, toDTO(s))
	}
	c.JSON(http.StatusOK, dtos)
}

// Get returns a single startup or a structured not-found result.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "Startup not found")
		return
	}

	startup, err := h.startups.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, startups.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Startup not found")
			return
		}
		log.Error().Err(err).Uint64("id", id).Msg("failed to get startup")
		common.RespondError(c, http.StatusInternalServerError, "Failed to get startup")
		return
	}

	c.JSON(http.StatusOK, toDTO(startup))
}

// Package site serves the server-rendered HTML pages: listing, search,
// registration, login and the startup submission form.
package site

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/api/middleware"
	"github.com/arkadem/startup-board/internal/auth"
	"github.com/arkadem/startup-board/internal/startups"
	"github.com/arkadem/startup-board/storage"
)

// Handler carries the services the HTML pages depend on.
type Handler struct {
	startups *startups.Service
	auth     *auth.Service
	sessions *auth.SessionManager
	store    storage.Store
}

func NewHandler(startupsSvc *startups.Service, authSvc *auth.Service, sessions *auth.SessionManager, store storage.Store) *Handler {
	return &Handler{
		startups: startupsSvc,
		auth:     authSvc,
		sessions: sessions,
		store:    store,
	}
}

// pageData assembles the common template payload.
func (h *Handler) pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{"Query": ""}
	if user, ok := middleware.CurrentUser(c); ok {
		data["User"] = user
	}
	if flash := popFlash(c); flash != nil {
		data["Flash"] = flash
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// Index renders the full startup listing.
func (h *Handler) Index(c *gin.Context) {
	list, err := h.startups.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list startups")
		c.HTML(http.StatusOK, "index.html", h.pageData(c, gin.H{
			"Startups": nil,
			"Warning":  "The listing is temporarily unavailable.",
		}))
		return
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(c, gin.H{"Startups": list}))
}

// ServeUpload serves a stored logo file out of the upload directory.
func (h *Handler) ServeUpload(c *gin.Context) {
	filename := c.Param("filename")
	if !storage.IsValidFilename(filename) {
		c.Status(http.StatusNotFound)
		return
	}

	path, err := h.store.Path(filename)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	exists, err := h.store.Exists(c.Request.Context(), filename)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(path)
}

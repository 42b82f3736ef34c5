package site

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/api/middleware"
	"github.com/arkadem/startup-board/internal/startups"
	"github.com/arkadem/startup-board/internal/uploads"
)

// StartupForm renders the submission form. Session required.
func (h *Handler) StartupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "startup_form.html", h.pageData(c, nil))
}

// SubmitStartup handles the multipart submission POST. Session required.
func (h *Handler) SubmitStartup(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var logo *multipart.FileHeader
	if fh, err := c.FormFile("logo"); err == nil {
		logo = fh
	}

	_, err := h.startups.Submit(c.Request.Context(), startups.SubmitInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Logo:        logo,
	}, user)
	if err != nil {
		setFlash(c, "danger", submissionErrorMessage(err))
		c.Redirect(http.StatusFound, "/startup/new")
		return
	}

	setFlash(c, "success", "Startup added successfully!")
	c.Redirect(http.StatusFound, "/")
}

// submissionErrorMessage maps workflow errors to user-facing text.
func submissionErrorMessage(err error) string {
	switch {
	case errors.Is(err, startups.ErrMissingRequiredField):
		return "Name and description are required."
	case errors.Is(err, startups.ErrNoFileProvided):
		return "No logo file selected."
	case errors.Is(err, uploads.ErrNoFileSelected):
		return "No file selected."
	case errors.Is(err, uploads.ErrInvalidFileType):
		return "Invalid file format. Only .png, .jpg, .jpeg and .gif are allowed."
	case errors.Is(err, uploads.ErrStorageWriteFailed):
		return "Failed to store the uploaded file."
	default:
		log.Error().Err(err).Msg("startup submission failed")
		return "Something went wrong, please try again."
	}
}

// Search runs the listing search. Empty queries never reach the
// repository; they bounce back to the index with a warning.
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		setFlash(c, "warning", "Enter a search query.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	results, err := h.startups.Search(c.Request.Context(), query)
	if err != nil {
		setFlash(c, "danger", "Search failed, please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "startup_list.html", h.pageData(c, gin.H{
		"Startups": results,
		"Query":    query,
	}))
}

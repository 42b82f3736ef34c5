package site

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/api/middleware"
	"github.com/arkadem/startup-board/internal/auth"
)

// RegisterForm renders the signup page; authenticated users are sent home.
func (h *Handler) RegisterForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.pageData(c, nil))
}

// Register handles the signup form POST.
func (h *Handler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.auth.Register(c.Request.Context(), username, email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			setFlash(c, "danger", "Invalid email address.")
		case errors.Is(err, auth.ErrDuplicateUsername):
			setFlash(c, "danger", "Username is already taken.")
		case errors.Is(err, auth.ErrDuplicateEmail):
			setFlash(c, "danger", "Email is already registered.")
		case errors.Is(err, auth.ErrMissingCredentials):
			setFlash(c, "danger", "All fields are required.")
		default:
			log.Error().Err(err).Msg("registration failed")
			setFlash(c, "danger", "Registration failed, please try again.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	setFlash(c, "success", "Registration successful! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page; authenticated users are sent home.
func (h *Handler) LoginForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.pageData(c, nil))
}

// Login handles the login form POST and establishes the session cookie.
func (h *Handler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.auth.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("login failed")
		}
		// Uniform message for unknown email and wrong password.
		setFlash(c, "danger", "Invalid email or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to issue session")
		setFlash(c, "danger", "Login failed, please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	h.sessions.SetCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session and returns to the listing.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.Redirect(http.StatusFound, "/")
}

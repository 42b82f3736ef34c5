package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/arkadem/startup-board/database/models"
	"github.com/arkadem/startup-board/database/repo/accounts"
	"github.com/arkadem/startup-board/internal/auth"
)

// ContextUserKey is where the authenticated user is stored in the gin
// context.
const ContextUserKey = "current_user"

// LoadSession resolves the session cookie into a user and stores it in
// the context when present. Anonymous requests pass through untouched; a
// stale or tampered cookie is cleared.
func LoadSession(sessions *auth.SessionManager, accountsRepo *accounts.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := sessions.Parse(token)
		if err != nil {
			sessions.ClearCookie(c)
			c.Next()
			return
		}

		user, err := accountsRepo.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// Only a deleted account invalidates the cookie; a transient
			// database error must not log the user out.
			if errors.Is(err, accounts.ErrUserNotFound) {
				sessions.ClearCookie(c)
			} else {
				log.Error().Err(err).Uint("user_id", userID).Msg("failed to load session user")
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireSession redirects anonymous browsers to the login page. It must
// run after LoadSession.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by LoadSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

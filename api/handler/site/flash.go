package site

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "startup_flash"

// Flash is a one-shot message surfaced on the next rendered page.
// Level is one of "success", "warning", "danger".
type Flash struct {
	Level   string
	Message string
}

// setFlash queues a message for the next render. gin's SetCookie
// URL-encodes the value, so arbitrary message text survives.
func setFlash(c *gin.Context, level, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, level+"|"+message, 60, "/", "", false, true)
}

// popFlash returns the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	level, message, found := strings.Cut(value, "|")
	if !found {
		return &Flash{Level: "info", Message: value}
	}
	return &Flash{Level: level, Message: message}
}

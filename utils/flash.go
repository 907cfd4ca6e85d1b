package utils

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a one-shot message shown by the next rendered page. secure
// should match the session cookie's setting.
func SetFlash(c *gin.Context, message string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString([]byte(message)), 60, "/", "", secure, true)
}

// PopFlash returns any pending flash messages and clears them.
func PopFlash(c *gin.Context, secure bool) []string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return []string{}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", secure, true)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return []string{}
	}
	return []string{string(decoded)}
}

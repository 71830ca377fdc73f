package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the raw session token.
const SessionCookie = "session_token"

// CSRFHeader carries the anti-forgery token on mutating requests.
const CSRFHeader = "X-CSRF-Token"

// CookieHelper manages the session cookie. Always HTTP-only and
// SameSite=Strict; Secure unless explicitly disabled for local development.
type CookieHelper struct {
	secure bool
	maxAge int
}

func NewCookieHelper(secure bool, maxAgeSeconds int) *CookieHelper {
	return &CookieHelper{secure: secure, maxAge: maxAgeSeconds}
}

// SetSessionCookie attaches the session token to the response.
func (h *CookieHelper) SetSessionCookie(c *gin.Context, token string) {
	h.setCookie(c, token, h.maxAge)
}

// ClearSessionCookie removes the session cookie.
func (h *CookieHelper) ClearSessionCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// GetSessionToken retrieves the raw session token from the cookie, or ""
// when absent.
func (h *CookieHelper) GetSessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		SessionCookie,
		value,
		maxAge,
		"/",
		"",
		h.secure,
		true, // httpOnly - always true for session cookies
	)
}

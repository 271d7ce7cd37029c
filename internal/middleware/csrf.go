package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFFieldName  = "_csrf"
)

// EnsureCSRFToken returns the request's anti-forgery token, minting and
// setting a new cookie when the request carries none. Form handlers
// embed the value as a hidden field.
func EnsureCSRFToken(c *gin.Context) string {
	if token, err := c.Cookie(CSRFCookieName); err == nil && token != "" {
		return token
	}
	token := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CSRFCookieName, token, 0, "/", "", false, true)
	return token
}

// CSRFMiddleware rejects state-changing requests whose _csrf form field
// does not match the token cookie (double-submit check).
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookieName)
		field := c.PostForm(CSRFFieldName)
		if err != nil || cookie == "" || field == "" ||
			!hmac.Equal([]byte(cookie), []byte(field)) {
			c.String(http.StatusForbidden, "Invalid anti-forgery token.")
			c.Abort()
			return
		}

		c.Next()
	}
}

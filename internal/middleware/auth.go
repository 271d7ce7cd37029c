package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tchapssolution/customer-webapp/internal/session"
)

const (
	ContextUserName  = "userName"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// AuthMiddleware gates protected routes on a valid session cookie.
// Requests without one are redirected to the login page, carrying the
// original path as a return target. Valid sessions past half their
// lifetime get a fresh cookie (sliding window).
func AuthMiddleware(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			redirectToLogin(c)
			return
		}

		claims, issuedAt, err := sessions.Parse(raw)
		if err != nil {
			redirectToLogin(c)
			return
		}

		if time.Since(issuedAt) > sessions.TTL()/2 {
			if err := sessions.Issue(c, claims); err != nil {
				redirectToLogin(c)
				return
			}
		}

		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	target := "/users/login?return=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

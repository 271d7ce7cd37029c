package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tchapssolution/customer-webapp/internal/config"
	"github.com/tchapssolution/customer-webapp/internal/handlers"
	"github.com/tchapssolution/customer-webapp/internal/models"
	"github.com/tchapssolution/customer-webapp/internal/session"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *gorm.DB, *session.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Customer{}))
	require.NoError(t, db.Exec("DELETE FROM customers").Error)

	cfg := &config.Config{
		SessionSecret: "test-secret",
		SessionTTL:    20 * time.Minute,
	}
	sessions := session.New(cfg)

	h := handlers.NewUserHandler(db, sessions, nil)

	r := gin.New()
	r.Use(gin.Recovery())
	r.LoadHTMLGlob("../../web/templates/*.tmpl")

	r.GET("/users/login", h.LoginForm)
	r.POST("/users/login", h.Login)
	r.GET("/users/logout", h.Logout)

	return r, db, sessions
}

func sessionCookie(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	return ""
}

func TestLoginFormRendersReturnPath(t *testing.T) {
	r, _, _ := setupUserRouter(t)

	w := getPage(r, "/users/login?return=%2Fcustomers%2Fcreate")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/customers/create")
}

func TestLoginUnknownEmailRendersGenericError(t *testing.T) {
	r, _, _ := setupUserRouter(t)

	w := postForm(r, "/users/login", url.Values{
		"username": {"nobody@example.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
	assert.Empty(t, sessionCookie(w), "no session cookie on failed login")
}

func TestLoginIssuesAdministratorCookie(t *testing.T) {
	r, db, sessions := setupUserRouter(t)

	require.NoError(t, db.Create(&models.Customer{
		Name:  "Tchaps",
		Email: "consulting@tchapssolution.com",
		Phone: "438-126-4569",
	}).Error)

	w := postForm(r, "/users/login", url.Values{
		"username": {"consulting@tchapssolution.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customers", w.Header().Get("Location"))

	raw := sessionCookie(w)
	require.NotEmpty(t, raw)

	claims, _, err := sessions.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Tchaps", claims.Name)
	assert.Equal(t, "consulting@tchapssolution.com", claims.Email)
	assert.Equal(t, handlers.RoleAdministrator, claims.Role)
}

func TestLoginEmailMatchIsCaseSensitive(t *testing.T) {
	r, db, _ := setupUserRouter(t)

	require.NoError(t, db.Create(&models.Customer{
		Name:  "Tchaps",
		Email: "consulting@tchapssolution.com",
	}).Error)

	w := postForm(r, "/users/login", url.Values{
		"username": {"Consulting@Tchapssolution.com"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
	assert.Empty(t, sessionCookie(w))
}

func TestLoginHonorsLocalReturnPath(t *testing.T) {
	r, db, _ := setupUserRouter(t)

	require.NoError(t, db.Create(&models.Customer{
		Name:  "Daniel",
		Email: "daniel@example.com",
	}).Error)

	w := postForm(r, "/users/login", url.Values{
		"username": {"daniel@example.com"},
		"return":   {"/customers/2/edit"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customers/2/edit", w.Header().Get("Location"))
}

func TestLoginRejectsExternalReturnPath(t *testing.T) {
	r, db, _ := setupUserRouter(t)

	require.NoError(t, db.Create(&models.Customer{
		Name:  "Daniel",
		Email: "daniel@example.com",
	}).Error)

	for _, ret := range []string{"https://evil.example.com", "//evil.example.com", "evil"} {
		w := postForm(r, "/users/login", url.Values{
			"username": {"daniel@example.com"},
			"return":   {ret},
		})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/customers", w.Header().Get("Location"), "return=%s", ret)
	}
}

func TestLogoutClearsCookieAndRedirects(t *testing.T) {
	r, _, _ := setupUserRouter(t)

	w := getPage(r, "/users/logout")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customers", w.Header().Get("Location"))

	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.Contains(setCookie, session.CookieName+"="), "cookie must be cleared")
	assert.Contains(t, setCookie, "Max-Age=0")
}

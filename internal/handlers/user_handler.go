package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tchapssolution/customer-webapp/internal/audit"
	"github.com/tchapssolution/customer-webapp/internal/models"
	"github.com/tchapssolution/customer-webapp/internal/session"
)

// RoleAdministrator is the fixed role claim granted at login.
const RoleAdministrator = "Administrator"

type UserHandler struct {
	db       *gorm.DB
	sessions *session.Service
	audit    *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, sessions *session.Service, dispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, sessions: sessions, audit: dispatcher}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Return   string `form:"return"`
}

// --------- Handlers ---------

func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "users/login", gin.H{
		"Return": c.Query("return"),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		h.loginFailed(c, req.Return)
		return
	}

	// The username is matched against customer emails, case-sensitive,
	// first row in storage order when duplicates exist.
	var cust models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", req.Username).
		First(&cust).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.loginFailed(c, req.Return)
			return
		}
		c.String(http.StatusInternalServerError, "Login failed.")
		return
	}

	claims := session.Claims{
		Name:  cust.Name,
		Email: cust.Email,
		Role:  RoleAdministrator,
	}
	if err := h.sessions.Issue(c, claims); err != nil {
		c.String(http.StatusInternalServerError, "Login failed.")
		return
	}

	if h.audit != nil {
		h.audit.Dispatch(audit.Event{
			ActorEmail: cust.Email,
			Action:     "user_logged_in",
			Entity:     "session",
		})
	}

	c.Redirect(http.StatusFound, redirectTarget(req.Return))
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/customers")
}

// --------- Helpers ---------

// loginFailed re-renders the form with one generic message, never
// revealing which check missed.
func (h *UserHandler) loginFailed(c *gin.Context, returnPath string) {
	c.HTML(http.StatusOK, "users/login", gin.H{
		"Error":  "Invalid username or password.",
		"Return": returnPath,
	})
}

func redirectTarget(returnPath string) string {
	if isLocalPath(returnPath) {
		return returnPath
	}
	return "/customers"
}

// isLocalPath accepts only paths inside this application, rejecting
// protocol-relative and backslash tricks.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") &&
		!strings.HasPrefix(p, "//") &&
		!strings.HasPrefix(p, "/\\") &&
		!strings.Contains(p, "://")
}

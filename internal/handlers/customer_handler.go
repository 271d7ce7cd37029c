package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tchapssolution/customer-webapp/internal/audit"
	domain "github.com/tchapssolution/customer-webapp/internal/domain/customer"
	"github.com/tchapssolution/customer-webapp/internal/middleware"
	"github.com/tchapssolution/customer-webapp/internal/models"
	"github.com/tchapssolution/customer-webapp/internal/storage"
)

// RepositoryFactory yields a fresh unit of work per request.
type RepositoryFactory func() domain.Repository

type CustomerHandler struct {
	repos RepositoryFactory
	files storage.FileStore
	audit *audit.Dispatcher
}

func NewCustomerHandler(
	repos RepositoryFactory,
	files storage.FileStore,
	dispatcher *audit.Dispatcher,
) *CustomerHandler {
	return &CustomerHandler{
		repos: repos,
		files: files,
		audit: dispatcher,
	}
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *CustomerHandler) Index(c *gin.Context) {
	q := c.Query("q")

	repo := h.repos()
	customers, err := repo.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load customers.")
		return
	}

	c.HTML(http.StatusOK, "customers/index", gin.H{
		"Customers": domain.Filter(customers, q),
		"Query":     q,
	})
}

func (h *CustomerHandler) Details(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	repo := h.repos()
	cust, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load customer.")
		return
	}

	c.HTML(http.StatusOK, "customers/detail", gin.H{"Customer": cust})
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "customers/form", gin.H{
		"Title":    "Create Customer",
		"Action":   "/customers/create",
		"Customer": &models.Customer{},
		"CSRF":     middleware.EnsureCSRFToken(c),
	})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var cust models.Customer
	if err := c.ShouldBind(&cust); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if strings.TrimSpace(cust.Name) == "" {
		c.HTML(http.StatusOK, "customers/form", gin.H{
			"Title":    "Create Customer",
			"Action":   "/customers/create",
			"Customer": &cust,
			"Error":    "Name is required.",
			"CSRF":     middleware.EnsureCSRFToken(c),
		})
		return
	}

	repo := h.repos()
	ctx := c.Request.Context()

	if err := repo.Insert(ctx, &cust); err != nil {
		c.String(http.StatusInternalServerError, "Failed to create customer.")
		return
	}
	if err := repo.Commit(ctx); err != nil {
		c.String(http.StatusInternalServerError, "Failed to create customer.")
		return
	}

	h.dispatch(c, "customer_created", &cust.ID)

	c.Redirect(http.StatusFound, "/customers")
}

// ======================================================
// EDIT
// ======================================================

func (h *CustomerHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	repo := h.repos()
	cust, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load customer.")
		return
	}

	c.HTML(http.StatusOK, "customers/form", gin.H{
		"Title":    "Edit Customer",
		"Action":   "/customers/" + strconv.FormatUint(uint64(id), 10) + "/edit",
		"Customer": cust,
		"CSRF":     middleware.EnsureCSRFToken(c),
	})
}

func (h *CustomerHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	var cust models.Customer
	if err := c.ShouldBind(&cust); err != nil {
		c.String(http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if id != cust.ID {
		notFound(c)
		return
	}

	action := "/customers/" + strconv.FormatUint(uint64(id), 10) + "/edit"
	if strings.TrimSpace(cust.Name) == "" {
		c.HTML(http.StatusOK, "customers/form", gin.H{
			"Title":    "Edit Customer",
			"Action":   action,
			"Customer": &cust,
			"Error":    "Name is required.",
			"CSRF":     middleware.EnsureCSRFToken(c),
		})
		return
	}

	ctx := c.Request.Context()

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to read upload.")
			return
		}
		defer src.Close()

		path, err := h.files.Save(ctx, filepath.Ext(file.Filename), src)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to store upload.")
			return
		}
		cust.Image = path
	}

	repo := h.repos()
	if err := repo.Update(ctx, &cust); err != nil {
		c.String(http.StatusInternalServerError, "Failed to update customer.")
		return
	}

	if err := repo.Commit(ctx); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// The row may have been deleted out from under us.
			if _, getErr := repo.GetByID(ctx, id); errors.Is(getErr, domain.ErrNotFound) {
				notFound(c)
				return
			}
			c.String(http.StatusInternalServerError, "Customer was modified concurrently.")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to update customer.")
		return
	}

	h.dispatch(c, "customer_updated", &cust.ID)

	c.Redirect(http.StatusFound, "/customers")
}

// ======================================================
// DELETE
// ======================================================

func (h *CustomerHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	repo := h.repos()
	cust, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load customer.")
		return
	}

	c.HTML(http.StatusOK, "customers/delete", gin.H{
		"Customer": cust,
		"CSRF":     middleware.EnsureCSRFToken(c),
	})
}

// DeleteConfirmed is idempotent: a vanished record still commits and
// redirects to the list.
func (h *CustomerHandler) DeleteConfirmed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}

	repo := h.repos()
	ctx := c.Request.Context()

	_, err := repo.GetByID(ctx, id)
	switch {
	case err == nil:
		if err := repo.Delete(ctx, id); err != nil {
			c.String(http.StatusInternalServerError, "Failed to delete customer.")
			return
		}
		h.dispatch(c, "customer_deleted", &id)
	case errors.Is(err, domain.ErrNotFound):
		// Already gone: fall through to commit and redirect.
	default:
		c.String(http.StatusInternalServerError, "Failed to load customer.")
		return
	}

	if err := repo.Commit(ctx); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete customer.")
		return
	}

	c.Redirect(http.StatusFound, "/customers")
}

// ======================================================
// Helpers
// ======================================================

func (h *CustomerHandler) dispatch(c *gin.Context, action string, entityID *uint) {
	if h.audit == nil {
		return
	}
	h.audit.Dispatch(audit.Event{
		ActorEmail: c.GetString(middleware.ContextUserEmail),
		Action:     action,
		Entity:     "customer",
		EntityID:   entityID,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Customer not found.")
}

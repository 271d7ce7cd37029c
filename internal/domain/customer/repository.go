package customer

import (
	"context"
	"errors"

	"github.com/tchapssolution/customer-webapp/internal/models"
)

var (
	// ErrNotFound is the only absence signal for lookups.
	ErrNotFound = errors.New("customer not found")

	// ErrConflict means the row changed or vanished since it was read.
	ErrConflict = errors.New("customer modified concurrently")
)

// Repository is a per-request unit of work over the customer table.
// Insert, Update and Delete stage work; Commit flushes everything in a
// single transaction. Nothing is applied until Commit.
type Repository interface {
	List(ctx context.Context) ([]models.Customer, error)

	GetByID(ctx context.Context, id uint) (*models.Customer, error)

	// Insert stages a create. The customer's ID is backfilled on Commit.
	Insert(ctx context.Context, c *models.Customer) error

	// Update stages a whole-record replace guarded by a compare-and-swap
	// on Version. Commit surfaces ErrConflict when the swap misses.
	Update(ctx context.Context, c *models.Customer) error

	// Delete stages removal by id. Staging a delete for a row that is
	// already gone is not an error.
	Delete(ctx context.Context, id uint) error

	Commit(ctx context.Context) error
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/tchapssolution/customer-webapp/internal/domain/customer"
	"github.com/tchapssolution/customer-webapp/internal/models"
)

// CustomerGormRepository is a request-scoped unit of work. Writes are
// staged and flushed by Commit inside one transaction.
type CustomerGormRepository struct {
	db      *gorm.DB
	pending []func(tx *gorm.DB) error
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *CustomerGormRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerGormRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return &c, nil
}

// --------------------------------------------------
// Staged writes
// --------------------------------------------------

func (r *CustomerGormRepository) Insert(ctx context.Context, c *models.Customer) error {
	if c.Version == 0 {
		c.Version = 1
	}
	r.pending = append(r.pending, func(tx *gorm.DB) error {
		return tx.Create(c).Error
	})
	return nil
}

func (r *CustomerGormRepository) Update(ctx context.Context, c *models.Customer) error {
	r.pending = append(r.pending, func(tx *gorm.DB) error {
		res := tx.Model(&models.Customer{}).
			Where("id = ? AND version = ?", c.ID, c.Version).
			Updates(map[string]any{
				"name":        c.Name,
				"email":       c.Email,
				"address":     c.Address,
				"city":        c.City,
				"region":      c.Region,
				"postal_code": c.PostalCode,
				"country":     c.Country,
				"phone":       c.Phone,
				"fax":         c.Fax,
				"image":       c.Image,
				"version":     c.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrConflict
		}
		c.Version++
		return nil
	})
	return nil
}

func (r *CustomerGormRepository) Delete(ctx context.Context, id uint) error {
	r.pending = append(r.pending, func(tx *gorm.DB) error {
		return tx.Delete(&models.Customer{}, id).Error
	})
	return nil
}

// Commit flushes the staged operations in one transaction. The staged
// set is cleared whether or not the flush succeeds.
func (r *CustomerGormRepository) Commit(ctx context.Context) error {
	ops := r.pending
	r.pending = nil

	if len(ops) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}

package customer

import (
	"strings"

	"github.com/tchapssolution/customer-webapp/internal/models"
)

// Matches reports whether q occurs as a case-sensitive substring of the
// customer's name, email or phone. An empty q matches every customer.
func Matches(c *models.Customer, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(c.Name, q) ||
		strings.Contains(c.Email, q) ||
		strings.Contains(c.Phone, q)
}

// Filter retains the customers matched by q, preserving storage order.
func Filter(customers []models.Customer, q string) []models.Customer {
	if q == "" {
		return customers
	}
	out := make([]models.Customer, 0, len(customers))
	for i := range customers {
		if Matches(&customers[i], q) {
			out = append(out, customers[i])
		}
	}
	return out
}

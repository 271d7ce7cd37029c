package customer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/tchapssolution/customer-webapp/internal/domain/customer"
	"github.com/tchapssolution/customer-webapp/internal/models"
)

func fixtures() []models.Customer {
	return []models.Customer{
		{ID: 1, Name: "Tchaps", Country: "CA", Phone: "438-126-4569", Email: "consulting@tchapssolution.com"},
		{ID: 2, Name: "Daniel", Country: "CM", Phone: "438-125-4569"},
		{ID: 3, Name: "Daniella", Country: "US", Phone: "438-125-4569"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		q    string
		want []uint
	}{
		{"", []uint{1, 2, 3}},
		{"tchaps", []uint{1}},
		{"Da", []uint{2, 3}},
		{"ALex", nil},
		{"438-125", []uint{2, 3}},
		{"consulting", []uint{1}},
	}

	for _, tt := range tests {
		t.Run("q="+tt.q, func(t *testing.T) {
			got := domain.Filter(fixtures(), tt.q)

			var ids []uint
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMatchesIsCaseSensitive(t *testing.T) {
	c := models.Customer{Name: "Daniel"}

	assert.True(t, domain.Matches(&c, "Dan"))
	assert.False(t, domain.Matches(&c, "dan"))
	assert.False(t, domain.Matches(&c, "DANIEL"))
}

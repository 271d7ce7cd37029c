package models

import "time"

type Customer struct {
	ID uint `gorm:"primaryKey" form:"id" json:"id"`

	Name       string `gorm:"size:100;not null" form:"name" json:"name"`
	Email      string `gorm:"size:100" form:"email" json:"email"`
	Address    string `gorm:"size:255" form:"address" json:"address"`
	City       string `gorm:"size:100" form:"city" json:"city"`
	Region     string `gorm:"size:100" form:"region" json:"region"`
	PostalCode string `gorm:"size:20" form:"postal_code" json:"postal_code"`
	Country    string `gorm:"size:100" form:"country" json:"country"`
	Phone      string `gorm:"size:20" form:"phone" json:"phone"`
	Fax        string `gorm:"size:20" form:"fax" json:"fax"`

	// Set only when an edit uploads a file. Never bound from the form.
	Image string `gorm:"size:255" form:"-" json:"image"`

	// Optimistic-concurrency token, bumped on every update. Round-trips
	// through the edit form as a hidden field.
	Version int64 `gorm:"not null;default:1" form:"version" json:"version"`

	CreatedAt time.Time `form:"-" json:"created_at"`
	UpdatedAt time.Time `form:"-" json:"updated_at"`
}

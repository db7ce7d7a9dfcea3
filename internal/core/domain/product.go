package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. Read-mostly: only stock is mutable through the
// API, and only by admins.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Size        string    `json:"size,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

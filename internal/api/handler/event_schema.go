package handler

import "time"

type eventRequest struct {
	Type      string    `json:"type"      validate:"required"`
	ProductID string    `json:"productId"` // optional
	Timestamp time.Time `json:"timestamp"` // optional, defaults to now
}

type acceptedResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

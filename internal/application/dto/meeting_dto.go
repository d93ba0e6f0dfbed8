package dto

import "time"

// CreateMeetingRequest entrada para agendar una reunión.
type CreateMeetingRequest struct {
	Title      string    `json:"title" validate:"required"`
	ClientName string    `json:"client_name"`
	Date       time.Time `json:"date" validate:"required"`
	Notes      string    `json:"notes"`
}

// CreateExpiryRequest entrada para registrar el vencimiento de un lote.
type CreateExpiryRequest struct {
	ProductID  int64     `json:"product_id" validate:"required"`
	ExpiryDate time.Time `json:"expiry_date" validate:"required"`
	Quantity   int       `json:"quantity" validate:"min=0"`
}

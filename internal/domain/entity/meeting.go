package entity

import "time"

// Meeting representa una reunión agendada con un cliente.
type Meeting struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	ClientName string    `json:"client_name,omitempty"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes,omitempty"`
}

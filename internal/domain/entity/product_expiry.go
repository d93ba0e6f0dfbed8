package entity

import "time"

// ProductExpiry registra la fecha de vencimiento de un lote de producto.
// ProductName es denormalizado para listados sin lookup.
type ProductExpiry struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Quantity    int       `json:"quantity"`
}

// ExpiresWithin indica si el lote vence dentro de los próximos d días
// (incluye lotes ya vencidos).
func (e ProductExpiry) ExpiresWithin(now time.Time, days int) bool {
	return !e.ExpiryDate.After(now.AddDate(0, 0, days))
}

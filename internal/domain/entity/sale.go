package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada.
// ProductName y ClientName son campos denormalizados a propósito: evitan un
// join/lookup al mostrar listados (el sistema no tiene consultas relacionales).
type Sale struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	QuantitySold  int             `json:"quantity_sold"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	SaleDate      time.Time       `json:"sale_date"`
	ClientID      *int64          `json:"client_id,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"` // clave de deduplicación
}

// Total devuelve el importe de la venta (cantidad × precio).
func (s Sale) Total() decimal.Decimal {
	return s.SellingPrice.Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}

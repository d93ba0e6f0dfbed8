package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un pago.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// Payment representa un pago registrado.
// ClientName es denormalizado (no es foreign key); SaleID enlaza opcionalmente
// con la venta que originó el pago.
type Payment struct {
	ID         int64           `json:"id"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"` // paid | pending | failed
	Method     string          `json:"method,omitempty"`
	SaleID     *int64          `json:"sale_id,omitempty"`
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending || s == PaymentStatusFailed
}

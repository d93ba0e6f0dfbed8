package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest entrada para registrar un pago.
type CreatePaymentRequest struct {
	Date       *time.Time      `json:"date"` // vacío = ahora
	ClientName string          `json:"client_name" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Status     string          `json:"status" validate:"omitempty,oneof=paid pending failed"`
	Method     string          `json:"method"`
	SaleID     *int64          `json:"sale_id"`
}

// UpdatePaymentStatusRequest cambio de estado de un pago.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid pending failed"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID         int64           `json:"id"`
	Date       time.Time       `json:"date"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Method     string          `json:"method,omitempty"`
	SaleID     *int64          `json:"sale_id,omitempty"`
}

// PaymentListResponse lista de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Total int               `json:"total"`
}

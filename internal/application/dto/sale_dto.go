package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta. TransactionID es
// opcional: si el cliente lo manda, los reintentos no duplican la venta.
type CreateSaleRequest struct {
	ProductID     int64            `json:"product_id" validate:"required"`
	QuantitySold  int              `json:"quantity_sold" validate:"required,min=1"`
	SellingPrice  *decimal.Decimal `json:"selling_price"` // vacío = precio del producto
	ClientID      *int64           `json:"client_id"`
	TransactionID string           `json:"transaction_id"`
	CreatePayment bool             `json:"create_payment"` // registrar pago pendiente asociado
	PaymentMethod string           `json:"payment_method"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	QuantitySold  int             `json:"quantity_sold"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Total         decimal.Decimal `json:"total"`
	SaleDate      time.Time       `json:"sale_date"`
	ClientID      *int64          `json:"client_id,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// SaleListResponse lista de ventas con el ingreso acumulado.
type SaleListResponse struct {
	Items        []SaleResponse  `json:"items"`
	Total        int             `json:"total"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

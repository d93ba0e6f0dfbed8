package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPurchase es una entrada del historial de compras de un cliente.
type ProductPurchase struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// Client representa un cliente del negocio con sus agregados de compra.
// PurchaseCount, TotalSpend y LastPurchase se mantienen al registrar ventas.
type Client struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	PurchaseCount   int               `json:"purchase_count"`
	TotalSpend      decimal.Decimal   `json:"total_spend"`
	LastPurchase    *time.Time        `json:"last_purchase,omitempty"`
	PurchaseHistory []ProductPurchase `json:"purchase_history,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

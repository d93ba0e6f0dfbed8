package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateClientRequest entrada para actualizar datos de contacto.
type UpdateClientRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// ClientResponse salida de un cliente con sus agregados.
type ClientResponse struct {
	ID              int64                    `json:"id"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email,omitempty"`
	Phone           string                   `json:"phone,omitempty"`
	PurchaseCount   int                      `json:"purchase_count"`
	TotalSpend      decimal.Decimal          `json:"total_spend"`
	LastPurchase    *time.Time               `json:"last_purchase,omitempty"`
	PurchaseHistory []entity.ProductPurchase `json:"purchase_history"`
	CreatedAt       time.Time                `json:"created_at"`
}

// ClientListResponse lista de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Units viaja como texto, igual que en el formulario original.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Units        string          `json:"units"`
	ReorderLevel int             `json:"reorder_level"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	Price        *decimal.Decimal `json:"price"`
	Units        *string          `json:"units"`
	ReorderLevel *int             `json:"reorder_level"`
}

// RestockProductRequest entrada para reabastecer unidades.
type RestockProductRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// ProductResponse salida de un producto; incluye los derivados de stock.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Units        string          `json:"units"`
	UnitCount    int             `json:"unit_count"`
	ReorderLevel int             `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

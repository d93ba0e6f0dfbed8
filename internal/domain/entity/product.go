package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Product representa un producto del inventario del negocio.
// Units se almacena como texto (así llega del formulario) y se parsea a
// entero bajo demanda; ReorderLevel solo se usa para el cálculo derivado
// de "stock bajo".
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Units        string          `json:"units"` // cantidad en texto, ej. "5"
	ReorderLevel int             `json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UnitCount devuelve Units parseado como entero no negativo.
// Texto no numérico o negativo cuenta como 0.
func (p Product) UnitCount() int {
	n := cast.ToInt(p.Units)
	if n < 0 {
		return 0
	}
	return n
}

// IsLowStock indica si el producto está por debajo de su nivel de reorden.
func (p Product) IsLowStock() bool {
	return p.UnitCount() < p.ReorderLevel
}

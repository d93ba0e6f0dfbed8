package store

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// ProductInput entrada parcial para crear un producto (sin ID ni timestamp:
// los sintetiza el store).
type ProductInput struct {
	Name         string
	Category     string
	Price        decimal.Decimal
	Units        string
	ReorderLevel int
}

// AddProduct crea el producto en memoria y lo devuelve completo.
// No valida reglas de negocio: eso es responsabilidad del caller.
func (s *Store) AddProduct(in ProductInput) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := entity.Product{
		ID:           nextID(s.products, func(p entity.Product) int64 { return p.ID }),
		Name:         in.Name,
		Category:     in.Category,
		Price:        in.Price,
		Units:        in.Units,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    time.Now(),
	}
	s.products = append(s.products, p)
	return p
}

// GetProduct devuelve el producto por ID, o nil si no existe.
func (s *Store) GetProduct(id int64) *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp
		}
	}
	return nil
}

// Products devuelve una copia de la colección de productos.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product{}, s.products...)
}

// UpdateProduct aplica cambios parciales y devuelve el producto actualizado,
// o nil si el ID no existe.
func (s *Store) UpdateProduct(id int64, name, category *string, price *decimal.Decimal, units *string, reorderLevel *int) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if name != nil {
			s.products[i].Name = *name
		}
		if category != nil {
			s.products[i].Category = *category
		}
		if price != nil {
			s.products[i].Price = *price
		}
		if units != nil {
			s.products[i].Units = *units
		}
		if reorderLevel != nil {
			s.products[i].ReorderLevel = *reorderLevel
		}
		cp := s.products[i]
		return &cp
	}
	return nil
}

// SetProductUnits fija la cantidad de unidades (texto). Usado por el caso de
// uso de ventas para descontar stock y por el restock.
func (s *Store) SetProductUnits(id int64, units string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Units = units
			cp := s.products[i]
			return &cp
		}
	}
	return nil
}

// AdjustProductUnits suma delta (negativo para descontar) al conteo de
// unidades y lo vuelve a guardar como texto. No valida que el resultado sea
// suficiente: esa comprobación es del caller, antes de llamar. El resultado
// nunca baja de 0.
func (s *Store) AdjustProductUnits(id int64, delta int) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		n := s.products[i].UnitCount() + delta
		if n < 0 {
			n = 0
		}
		s.products[i].Units = strconv.Itoa(n)
		cp := s.products[i]
		return &cp
	}
	return nil
}

// DeleteProduct elimina el producto. Devuelve false si no existía.
func (s *Store) DeleteProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// LowStockProducts devuelve los productos cuyo conteo de unidades (parseado
// del texto) está por debajo de su nivel de reorden.
func (s *Store) LowStockProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	low := []entity.Product{}
	for _, p := range s.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}

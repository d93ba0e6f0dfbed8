package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// SaleInput entrada parcial para registrar una venta. ID y fecha los
// sintetiza el store; si TransactionID llega vacío se genera uno (snowflake).
type SaleInput struct {
	ProductID     int64
	ProductName   string
	QuantitySold  int
	SellingPrice  decimal.Decimal
	ClientID      *int64
	ClientName    string
	TransactionID string
}

// AddSale registra la venta y la devuelve completa. Si ya existe una venta
// con el mismo TransactionID devuelve la existente y created=false
// (deduplicación de transacciones: reintentos del cliente no duplican).
//
// La validación de stock suficiente NO ocurre aquí: es del caller
// (usecase.SaleUseCase); el store aplica lo que le pidan.
func (s *Store) AddSale(in SaleInput) (entity.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.TransactionID != "" {
		for _, sl := range s.sales {
			if sl.TransactionID == in.TransactionID {
				return sl, false
			}
		}
	}
	txID := in.TransactionID
	if txID == "" {
		txID = txNode.Generate().String()
	}
	sale := entity.Sale{
		ID:            nextID(s.sales, func(sl entity.Sale) int64 { return sl.ID }),
		ProductID:     in.ProductID,
		ProductName:   in.ProductName,
		QuantitySold:  in.QuantitySold,
		SellingPrice:  in.SellingPrice,
		SaleDate:      time.Now(),
		ClientID:      in.ClientID,
		ClientName:    in.ClientName,
		TransactionID: txID,
	}
	s.sales = append(s.sales, sale)
	return sale, true
}

// Sales devuelve una copia de la colección de ventas.
func (s *Store) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Sale{}, s.sales...)
}

// DeleteSale elimina la venta. Devuelve false si no existía.
func (s *Store) DeleteSale(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return true
		}
	}
	return false
}

// TotalRevenue suma cantidad × precio de todas las ventas.
func (s *Store) TotalRevenue() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, sl := range s.sales {
		total = total.Add(sl.Total())
	}
	return total
}

package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// PaymentInput entrada parcial para registrar un pago.
type PaymentInput struct {
	Date       time.Time
	ClientName string
	Amount     decimal.Decimal
	Status     string
	Method     string
	SaleID     *int64
}

// AddPayment registra el pago y lo devuelve completo. Si Date llega en cero
// se usa la fecha actual; si Status llega vacío queda "pending".
func (s *Store) AddPayment(in PaymentInput) entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	status := in.Status
	if status == "" {
		status = entity.PaymentStatusPending
	}
	p := entity.Payment{
		ID:         nextID(s.payments, func(p entity.Payment) int64 { return p.ID }),
		Date:       date,
		ClientName: in.ClientName,
		Amount:     in.Amount,
		Status:     status,
		Method:     in.Method,
		SaleID:     in.SaleID,
	}
	s.payments = append(s.payments, p)
	return p
}

// Payments devuelve una copia de la colección de pagos.
func (s *Store) Payments() []entity.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Payment{}, s.payments...)
}

// UpdatePaymentStatus cambia el estado del pago y lo devuelve, o nil si el
// ID no existe. El caller valida que el estado sea conocido.
func (s *Store) UpdatePaymentStatus(id int64, status string) *entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments[i].Status = status
			cp := s.payments[i]
			return &cp
		}
	}
	return nil
}

// DeletePayment elimina el pago. Devuelve false si no existía.
func (s *Store) DeletePayment(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].ID == id {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			return true
		}
	}
	return false
}

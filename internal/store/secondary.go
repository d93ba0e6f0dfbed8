package store

import (
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// Entidades secundarias: reuniones y vencimientos de producto. Mismo patrón
// de registro plano con campos denormalizados que las colecciones primarias.

// MeetingInput entrada parcial para agendar una reunión.
type MeetingInput struct {
	Title      string
	ClientName string
	Date       time.Time
	Notes      string
}

// AddMeeting agenda la reunión y la devuelve completa.
func (s *Store) AddMeeting(in MeetingInput) entity.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := entity.Meeting{
		ID:         nextID(s.meetings, func(m entity.Meeting) int64 { return m.ID }),
		Title:      in.Title,
		ClientName: in.ClientName,
		Date:       in.Date,
		Notes:      in.Notes,
	}
	s.meetings = append(s.meetings, m)
	return m
}

// Meetings devuelve una copia de la colección de reuniones.
func (s *Store) Meetings() []entity.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Meeting{}, s.meetings...)
}

// DeleteMeeting elimina la reunión. Devuelve false si no existía.
func (s *Store) DeleteMeeting(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.meetings {
		if s.meetings[i].ID == id {
			s.meetings = append(s.meetings[:i], s.meetings[i+1:]...)
			return true
		}
	}
	return false
}

// ExpiryInput entrada parcial para registrar un vencimiento.
type ExpiryInput struct {
	ProductID   int64
	ProductName string
	ExpiryDate  time.Time
	Quantity    int
}

// AddExpiry registra el vencimiento de un lote y lo devuelve completo.
func (s *Store) AddExpiry(in ExpiryInput) entity.ProductExpiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entity.ProductExpiry{
		ID:          nextID(s.expiries, func(e entity.ProductExpiry) int64 { return e.ID }),
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		ExpiryDate:  in.ExpiryDate,
		Quantity:    in.Quantity,
	}
	s.expiries = append(s.expiries, e)
	return e
}

// Expiries devuelve una copia de la colección de vencimientos.
func (s *Store) Expiries() []entity.ProductExpiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.ProductExpiry{}, s.expiries...)
}

// ExpiringWithin devuelve los lotes que vencen dentro de los próximos días
// indicados (incluye los ya vencidos).
func (s *Store) ExpiringWithin(days int) []entity.ProductExpiry {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.ProductExpiry{}
	for _, e := range s.expiries {
		if e.ExpiresWithin(now, days) {
			out = append(out, e)
		}
	}
	return out
}

// DeleteExpiry elimina el registro de vencimiento. Devuelve false si no existía.
func (s *Store) DeleteExpiry(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expiries {
		if s.expiries[i].ID == id {
			s.expiries = append(s.expiries[:i], s.expiries[i+1:]...)
			return true
		}
	}
	return false
}

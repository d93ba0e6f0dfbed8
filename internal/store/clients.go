package store

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// ClientInput entrada parcial para crear un cliente.
type ClientInput struct {
	Name  string
	Email string
	Phone string
}

// AddClient crea el cliente con agregados en cero y lo devuelve completo.
func (s *Store) AddClient(in ClientInput) entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := entity.Client{
		ID:              nextID(s.clients, func(c entity.Client) int64 { return c.ID }),
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		TotalSpend:      decimal.Zero,
		PurchaseHistory: []entity.ProductPurchase{},
		CreatedAt:       time.Now(),
	}
	s.clients = append(s.clients, c)
	return c
}

// GetClient devuelve el cliente por ID, o nil si no existe.
func (s *Store) GetClient(id int64) *entity.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			cp := c
			cp.PurchaseHistory = append([]entity.ProductPurchase{}, c.PurchaseHistory...)
			return &cp
		}
	}
	return nil
}

// Clients devuelve una copia de la colección de clientes.
func (s *Store) Clients() []entity.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Client, len(s.clients))
	for i, c := range s.clients {
		cp := c
		cp.PurchaseHistory = append([]entity.ProductPurchase{}, c.PurchaseHistory...)
		out[i] = cp
	}
	return out
}

// UpdateClient aplica cambios parciales de contacto. Los agregados de compra
// no se tocan por esta vía (solo RecordPurchase los mantiene).
func (s *Store) UpdateClient(id int64, name, email, phone *string) *entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID != id {
			continue
		}
		if name != nil {
			s.clients[i].Name = *name
		}
		if email != nil {
			s.clients[i].Email = *email
		}
		if phone != nil {
			s.clients[i].Phone = *phone
		}
		cp := s.clients[i]
		return &cp
	}
	return nil
}

// DeleteClient elimina el cliente. Devuelve false si no existía.
func (s *Store) DeleteClient(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return true
		}
	}
	return false
}

// RecordPurchase actualiza los agregados del cliente (conteo, gasto total,
// última compra) y añade la entrada al historial. No hace nada si el
// cliente no existe.
func (s *Store) RecordPurchase(clientID int64, purchase entity.ProductPurchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID != clientID {
			continue
		}
		s.clients[i].PurchaseCount++
		s.clients[i].TotalSpend = s.clients[i].TotalSpend.Add(purchase.Amount)
		d := purchase.Date
		s.clients[i].LastPurchase = &d
		s.clients[i].PurchaseHistory = append(s.clients[i].PurchaseHistory, purchase)
		return
	}
}

// SearchClients busca clientes por nombre sin distinguir mayúsculas ni
// tildes ("Jose" encuentra a "José").
func (s *Store) SearchClients(query string) []entity.Client {
	q := foldName(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.Client{}
	for _, c := range s.clients {
		if strings.Contains(foldName(c.Name), q) {
			cp := c
			cp.PurchaseHistory = append([]entity.ProductPurchase{}, c.PurchaseHistory...)
			out = append(out, cp)
		}
	}
	return out
}

// foldName normaliza un nombre para búsqueda: minúsculas y sin marcas
// diacríticas (NFD + eliminación de combining marks).
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

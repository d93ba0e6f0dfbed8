// Package store implementa el almacén local en memoria de los datos del
// negocio. Es la única fuente de verdad durante la sesión: los mutadores
// aplican los cambios de forma optimista (el guardado remoto es un paso
// explícito posterior, ver application/sync).
//
// Los mutadores están agrupados por entidad en archivos separados
// (products.go, sales.go, clients.go, payments.go, secondary.go) y se
// componen en esta única fachada Store: un solo objeto explícito que se
// inyecta, sin singletons globales.
package store

import (
	"sync"

	"github.com/bwmarrin/snowflake"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// txNode genera identificadores de transacción únicos para ventas que llegan
// sin transaction_id propio.
var txNode *snowflake.Node

func init() {
	var err error
	txNode, err = snowflake.NewNode(1)
	if err != nil {
		panic("store: snowflake node: " + err.Error())
	}
}

// Store mantiene las colecciones de entidades de una sesión.
// Todos los métodos son seguros para uso concurrente; las mutaciones se
// aplican de forma síncrona en orden de llamada.
type Store struct {
	mu       sync.RWMutex
	products []entity.Product
	sales    []entity.Sale
	clients  []entity.Client
	payments []entity.Payment
	meetings []entity.Meeting
	expiries []entity.ProductExpiry
}

// New construye un store vacío.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.products = []entity.Product{}
	s.sales = []entity.Sale{}
	s.clients = []entity.Client{}
	s.payments = []entity.Payment{}
	s.meetings = []entity.Meeting{}
	s.expiries = []entity.ProductExpiry{}
}

// Snapshot devuelve una copia profunda de todas las colecciones.
// Es lo que el coordinador de sync serializa hacia la fila remota.
func (s *Store) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &entity.Snapshot{
		Products: s.products,
		Sales:    s.sales,
		Clients:  s.clients,
		Payments: s.payments,
		Meetings: s.meetings,
		Expiries: s.expiries,
	}
	return snap.Clone()
}

// Hydrate reemplaza TODO el estado local con el snapshot dado
// (last-remote-write-wins: no hay merge por campo; una edición local sin
// guardar se pierde — es el trade-off documentado del mecanismo de sync).
func (s *Store) Hydrate(snap *entity.Snapshot) {
	if snap == nil {
		snap = entity.EmptySnapshot()
	}
	c := snap.Clone()
	c.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = c.Products
	s.sales = c.Sales
	s.clients = c.Clients
	s.payments = c.Payments
	s.meetings = c.Meetings
	s.expiries = c.Expiries
}

// Clear vacía todas las colecciones. Se invoca al cerrar sesión: no hay
// limpieza parcial.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// nextProductID y similares sintetizan identificadores locales como
// max(existentes)+1, igual que hacía el cliente original.
func nextID[T any](items []T, id func(T) int64) int64 {
	var max int64
	for _, it := range items {
		if v := id(it); v > max {
			max = v
		}
	}
	return max + 1
}

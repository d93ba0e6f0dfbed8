package entity

// Snapshot es la copia completa de todas las colecciones de entidades en un
// instante. Es la unidad de lectura/escritura contra la fila user_data: el
// gateway remoto persiste siempre el snapshot entero (no hay escrituras
// parciales por entidad).
//
// Las cotizaciones y remisiones NO forman parte del snapshot: viven solo en
// el almacén local de documentos.
type Snapshot struct {
	Products []Product       `json:"products"`
	Sales    []Sale          `json:"sales"`
	Clients  []Client        `json:"clients"`
	Payments []Payment       `json:"payments"`
	Meetings []Meeting       `json:"meetings"`
	Expiries []ProductExpiry `json:"expiries"`
}

// EmptySnapshot devuelve un snapshot con todas las colecciones vacías
// (no nil). Es el estado de un usuario sin fila remota todavía.
func EmptySnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// Normalize reemplaza colecciones nil por slices vacíos. Campos ausentes o
// desconocidos en la fila remota deserializan como nil; tras Normalize el
// snapshot cumple el contrato "colección ausente = colección vacía".
func (s *Snapshot) Normalize() {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Sales == nil {
		s.Sales = []Sale{}
	}
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	if s.Payments == nil {
		s.Payments = []Payment{}
	}
	if s.Meetings == nil {
		s.Meetings = []Meeting{}
	}
	if s.Expiries == nil {
		s.Expiries = []ProductExpiry{}
	}
}

// IsEmpty indica si todas las colecciones están vacías.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Products) == 0 && len(s.Sales) == 0 && len(s.Clients) == 0 &&
		len(s.Payments) == 0 && len(s.Meetings) == 0 && len(s.Expiries) == 0
}

// Clone devuelve una copia profunda del snapshot (los slices internos de
// Client.PurchaseHistory y los items incluidos).
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Products: append([]Product{}, s.Products...),
		Sales:    append([]Sale{}, s.Sales...),
		Payments: append([]Payment{}, s.Payments...),
		Meetings: append([]Meeting{}, s.Meetings...),
		Expiries: append([]ProductExpiry{}, s.Expiries...),
	}
	c.Clients = make([]Client, len(s.Clients))
	for i, cl := range s.Clients {
		cc := cl
		if cl.PurchaseHistory != nil {
			cc.PurchaseHistory = append([]ProductPurchase{}, cl.PurchaseHistory...)
		}
		c.Clients[i] = cc
	}
	return c
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItem es una línea de una cotización o remisión.
type DocumentItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
}

// Estimate es una cotización. Se persiste solo en el almacén local de
// documentos (bbolt), nunca en el snapshot remoto.
type Estimate struct {
	ID         string          `json:"id"`
	Number     string          `json:"number"`
	ClientName string          `json:"client_name"`
	ClientGST  string          `json:"client_gst,omitempty"`
	Items      []DocumentItem  `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes,omitempty"`
}

// DeliveryChallan es una remisión de entrega. Misma política de persistencia
// que Estimate: almacén local únicamente.
type DeliveryChallan struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	ClientName  string         `json:"client_name"`
	ClientGST   string         `json:"client_gst,omitempty"`
	Address     string         `json:"address,omitempty"`
	Items       []DocumentItem `json:"items"`
	Date        time.Time      `json:"date"`
	VehicleNo   string         `json:"vehicle_no,omitempty"`
	DeliveredBy string         `json:"delivered_by,omitempty"`
}

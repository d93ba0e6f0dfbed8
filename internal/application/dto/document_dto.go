package dto

import (
	"time"

	"github.com/jhoicas/Negocio-api/internal/domain/entity"
)

// CreateEstimateRequest entrada para crear una cotización.
type CreateEstimateRequest struct {
	Number     string                `json:"number"`
	ClientName string                `json:"client_name" validate:"required"`
	ClientGST  string                `json:"client_gst"`
	Items      []entity.DocumentItem `json:"items" validate:"required,min=1"`
	Date       *time.Time            `json:"date"`
	Notes      string                `json:"notes"`
}

// CreateChallanRequest entrada para crear una remisión de entrega.
type CreateChallanRequest struct {
	Number      string                `json:"number"`
	ClientName  string                `json:"client_name" validate:"required"`
	ClientGST   string                `json:"client_gst"`
	Address     string                `json:"address"`
	Items       []entity.DocumentItem `json:"items" validate:"required,min=1"`
	Date        *time.Time            `json:"date"`
	VehicleNo   string                `json:"vehicle_no"`
	DeliveredBy string                `json:"delivered_by"`
}

// EstimateListResponse lista de cotizaciones.
type EstimateListResponse struct {
	Items []entity.Estimate `json:"items"`
	Total int               `json:"total"`
}

// ChallanListResponse lista de remisiones.
type ChallanListResponse struct {
	Items []entity.DeliveryChallan `json:"items"`
	Total int                      `json:"total"`
}

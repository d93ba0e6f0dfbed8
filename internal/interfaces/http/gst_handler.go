package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/domain"
	"github.com/jhoicas/Negocio-api/internal/gst"
)

// GSTHandler expone la consulta de números GST contra el servicio externo.
type GSTHandler struct {
	client *gst.Client
}

// NewGSTHandler construye el handler de GST.
func NewGSTHandler(client *gst.Client) *GSTHandler {
	return &GSTHandler{client: client}
}

// Lookup godoc
// @Summary      Consultar detalles de empresa por número GST
// @Description  El formato se valida localmente antes de tocar la red: un
// @Description  número mal formado responde 400 sin llamada externa.
// @Tags         gst
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GSTLookupRequest  true  "gstNumber"
// @Success      200   {object}  dto.GSTLookupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/gst/lookup [post]
func (h *GSTHandler) Lookup(c *fiber.Ctx) error {
	var in dto.GSTLookupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	details, err := h.client.Lookup(c.Context(), in.GSTNumber)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "GST_INVALID_FORMAT", Message: "número GST con formato inválido"})
		case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrServer):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GST_LOOKUP_FAILED", Message: "el servicio de GST no respondió correctamente"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(dto.GSTLookupResponse{
		GSTNumber:        details.GSTNumber,
		CompanyName:      details.CompanyName,
		Address:          details.Address,
		City:             details.City,
		State:            details.State,
		Pincode:          details.Pincode,
		RegistrationDate: details.RegistrationDate,
		BusinessType:     details.BusinessType,
	})
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/domain"
)

// DocumentHandler maneja cotizaciones y remisiones de entrega. A diferencia
// del resto de las colecciones, los documentos viven en el almacén local
// (bbolt) y no se sincronizan al remoto.
type DocumentHandler struct {
	sessions *session.Manager
	uc       *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(sessions *session.Manager, uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{sessions: sessions, uc: uc}
}

// CreateEstimate godoc
// @Summary      Crear cotización (numera EST-0001, EST-0002, ... si no trae número)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEstimateRequest  true  "cotización"
// @Success      201   {object}  entity.Estimate
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estimates [post]
func (h *DocumentHandler) CreateEstimate(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	var in dto.CreateEstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	est, err := h.uc.CreateEstimate(GetUserID(c), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(est)
}

// ListEstimates godoc
// @Summary      Listar cotizaciones
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstimateListResponse
// @Router       /api/estimates [get]
func (h *DocumentHandler) ListEstimates(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	list, err := h.uc.ListEstimates(GetUserID(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.EstimateListResponse{Items: list, Total: len(list)})
}

// DeleteEstimate godoc
// @Summary      Eliminar cotización
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cotización"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id} [delete]
func (h *DocumentHandler) DeleteEstimate(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	if err := h.uc.DeleteEstimate(GetUserID(c), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// EstimatePDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/estimates/{id}/pdf [get]
func (h *DocumentHandler) EstimatePDF(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	pdf, err := h.uc.EstimatePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// CreateChallan godoc
// @Summary      Crear remisión de entrega (numera DC-0001, DC-0002, ... si no trae número)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateChallanRequest  true  "remisión"
// @Success      201   {object}  entity.DeliveryChallan
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/challans [post]
func (h *DocumentHandler) CreateChallan(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	var in dto.CreateChallanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ch, err := h.uc.CreateChallan(GetUserID(c), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// ListChallans godoc
// @Summary      Listar remisiones
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChallanListResponse
// @Router       /api/challans [get]
func (h *DocumentHandler) ListChallans(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	list, err := h.uc.ListChallans(GetUserID(c))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(dto.ChallanListResponse{Items: list, Total: len(list)})
}

// DeleteChallan godoc
// @Summary      Eliminar remisión
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID de la remisión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/challans/{id} [delete]
func (h *DocumentHandler) DeleteChallan(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	if err := h.uc.DeleteChallan(GetUserID(c), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChallanPDF godoc
// @Summary      Descargar remisión en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la remisión"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/challans/{id}/pdf [get]
func (h *DocumentHandler) ChallanPDF(c *fiber.Ctx) error {
	if _, err := resolveSession(c, h.sessions); err != nil {
		return err
	}
	pdf, err := h.uc.ChallanPDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_name e items son requeridos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// AgendaHandler maneja reuniones y vencimientos de lotes.
type AgendaHandler struct {
	sessions       *session.Manager
	expiryWarnDays int
}

// NewAgendaHandler construye el handler de agenda. expiryWarnDays es la
// ventana por defecto del filtro ?expiring=true.
func NewAgendaHandler(sessions *session.Manager, expiryWarnDays int) *AgendaHandler {
	return &AgendaHandler{sessions: sessions, expiryWarnDays: expiryWarnDays}
}

// CreateMeeting godoc
// @Summary      Agendar reunión
// @Tags         agenda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMeetingRequest  true  "reunión"
// @Success      201   {object}  entity.Meeting
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/meetings [post]
func (h *AgendaHandler) CreateMeeting(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var in dto.CreateMeetingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.Date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y date son requeridos"})
	}
	m := sess.Store.AddMeeting(store.MeetingInput{
		Title:      in.Title,
		ClientName: in.ClientName,
		Date:       in.Date,
		Notes:      in.Notes,
	})
	return c.Status(fiber.StatusCreated).JSON(m)
}

// ListMeetings godoc
// @Summary      Listar reuniones
// @Tags         agenda
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Meeting
// @Router       /api/meetings [get]
func (h *AgendaHandler) ListMeetings(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(sess.Store.Meetings())
}

// DeleteMeeting godoc
// @Summary      Eliminar reunión
// @Tags         agenda
// @Security     Bearer
// @Param        id  path  int  true  "ID de la reunión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meetings/{id} [delete]
func (h *AgendaHandler) DeleteMeeting(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if !sess.Store.DeleteMeeting(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reunión no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateExpiry godoc
// @Summary      Registrar vencimiento de un lote de producto
// @Tags         agenda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpiryRequest  true  "vencimiento"
// @Success      201   {object}  entity.ProductExpiry
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expiries [post]
func (h *AgendaHandler) CreateExpiry(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var in dto.CreateExpiryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID <= 0 || in.ExpiryDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y expiry_date son requeridos"})
	}
	p := sess.Store.GetProduct(in.ProductID)
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	e := sess.Store.AddExpiry(store.ExpiryInput{
		ProductID:   in.ProductID,
		ProductName: p.Name,
		ExpiryDate:  in.ExpiryDate,
		Quantity:    in.Quantity,
	})
	return c.Status(fiber.StatusCreated).JSON(e)
}

// ListExpiries godoc
// @Summary      Listar vencimientos; con ?expiring=true solo los próximos a vencer
// @Tags         agenda
// @Security     Bearer
// @Produce      json
// @Param        expiring  query  bool  false  "solo lotes que vencen dentro de la ventana configurada"
// @Success      200  {array}  entity.ProductExpiry
// @Router       /api/expiries [get]
func (h *AgendaHandler) ListExpiries(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if c.QueryBool("expiring") {
		return c.JSON(sess.Store.ExpiringWithin(h.expiryWarnDays))
	}
	return c.JSON(sess.Store.Expiries())
}

// DeleteExpiry godoc
// @Summary      Eliminar registro de vencimiento
// @Tags         agenda
// @Security     Bearer
// @Param        id  path  int  true  "ID del vencimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expiries/{id} [delete]
func (h *AgendaHandler) DeleteExpiry(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if !sess.Store.DeleteExpiry(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vencimiento no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// PaymentHandler maneja el registro de pagos y sus cambios de estado.
type PaymentHandler struct {
	sessions *session.Manager
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(sessions *session.Manager) *PaymentHandler {
	return &PaymentHandler{sessions: sessions}
}

// Create godoc
// @Summary      Registrar pago
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var in dto.CreatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClientName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_name es requerido"})
	}
	if in.Status != "" && !entity.ValidPaymentStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser paid, pending o failed"})
	}
	var date time.Time
	if in.Date != nil {
		date = *in.Date
	}
	p := sess.Store.AddPayment(store.PaymentInput{
		Date:       date,
		ClientName: in.ClientName,
		Amount:     in.Amount,
		Status:     in.Status,
		Method:     in.Method,
		SaleID:     in.SaleID,
	})
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(p))
}

// List godoc
// @Summary      Listar pagos; con ?status= filtra por estado
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "paid | pending | failed"
// @Success      200  {object}  dto.PaymentListResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	payments := sess.Store.Payments()
	status := c.Query("status")
	out := dto.PaymentListResponse{Items: make([]dto.PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		if status != "" && p.Status != status {
			continue
		}
		out.Items = append(out.Items, toPaymentResponse(p))
	}
	out.Total = len(out.Items)
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pago
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                             true  "ID del pago"
// @Param        body  body  dto.UpdatePaymentStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !entity.ValidPaymentStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser paid, pending o failed"})
	}
	p := sess.Store.UpdatePaymentStatus(id, in.Status)
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
	}
	return c.JSON(toPaymentResponse(*p))
}

// Delete godoc
// @Summary      Eliminar pago
// @Tags         payments
// @Security     Bearer
// @Param        id  path  int  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if !sess.Store.DeletePayment(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toPaymentResponse(p entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		Date:       p.Date,
		ClientName: p.ClientName,
		Amount:     p.Amount,
		Status:     p.Status,
		Method:     p.Method,
		SaleID:     p.SaleID,
	}
}

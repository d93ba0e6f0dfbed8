package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain"
)

// SyncHandler expone el mecanismo de sincronización de la sesión: guardado
// explícito al remoto, refresh (pull completo) y el flag de auto-sync.
type SyncHandler struct {
	sessions *session.Manager
}

// NewSyncHandler construye el handler de sync.
func NewSyncHandler(sessions *session.Manager) *SyncHandler {
	return &SyncHandler{sessions: sessions}
}

// Save godoc
// @Summary      Persistir el snapshot completo de la sesión al remoto
// @Description  Los guardados concurrentes se serializan: el último snapshot
// @Description  encolado gana, nunca se intercalan escrituras parciales.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sync/save [post]
func (h *SyncHandler) Save(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := sess.Coordinator.Save(c.Context()); err != nil {
		return syncError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Refresh godoc
// @Summary      Recargar el store desde el remoto (sobrescribe lo local)
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sync/refresh [post]
func (h *SyncHandler) Refresh(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	if err := sess.Coordinator.Pull(c.Context()); err != nil {
		return syncError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetAutoSync godoc
// @Summary      Activar o desactivar el auto-sync de la sesión
// @Description  Con auto-sync activo la sesión recarga del remoto al recibir
// @Description  eventos de cambio de otras sesiones del mismo usuario.
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetAutoSyncRequest  true  "enabled"
// @Success      200   {object}  dto.SyncStatusResponse
// @Router       /api/sync/auto [put]
func (h *SyncHandler) SetAutoSync(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var in dto.SetAutoSyncRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sess.Coordinator.SetAutoSync(in.Enabled)
	return c.JSON(h.status(sess))
}

// Status godoc
// @Summary      Estado del sync y conteos por colección del store
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncStatusResponse
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	return c.JSON(h.status(sess))
}

func (h *SyncHandler) status(sess *session.Session) dto.SyncStatusResponse {
	snap := sess.Store.Snapshot()
	return dto.SyncStatusResponse{
		AutoSync: sess.Coordinator.AutoSync(),
		Products: len(snap.Products),
		Sales:    len(snap.Sales),
		Clients:  len(snap.Clients),
		Payments: len(snap.Payments),
		Meetings: len(snap.Meetings),
		Expiries: len(snap.Expiries),
	}
}

// syncError traduce los errores del gateway remoto a HTTP.
func syncError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNetwork) || errors.Is(err, domain.ErrServer) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: "fallo al comunicarse con el remoto, intente de nuevo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

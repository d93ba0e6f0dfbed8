package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/dto"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	"github.com/jhoicas/Negocio-api/internal/store"
)

// ClientHandler maneja el directorio de clientes de la sesión.
type ClientHandler struct {
	sessions *session.Manager
}

// NewClientHandler construye el handler de clientes.
func NewClientHandler(sessions *session.Manager) *ClientHandler {
	return &ClientHandler{sessions: sessions}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	cl := sess.Store.AddClient(store.ClientInput{Name: in.Name, Email: in.Email, Phone: in.Phone})
	return c.Status(fiber.StatusCreated).JSON(toClientResponse(cl))
}

// List godoc
// @Summary      Listar clientes; con ?q= busca por nombre ignorando acentos y mayúsculas
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "texto a buscar en el nombre"
// @Success      200  {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	var clients []entity.Client
	if q := c.Query("q"); q != "" {
		clients = sess.Store.SearchClients(q)
	} else {
		clients = sess.Store.Clients()
	}
	out := dto.ClientListResponse{Items: make([]dto.ClientResponse, 0, len(clients)), Total: len(clients)}
	for _, cl := range clients {
		out.Items = append(out.Items, toClientResponse(cl))
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cliente por ID, con historial de compras
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	cl := sess.Store.GetClient(id)
	if cl == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(toClientResponse(*cl))
}

// Update godoc
// @Summary      Actualizar datos de contacto de un cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cl := sess.Store.UpdateClient(id, in.Name, in.Email, in.Phone)
	if cl == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(toClientResponse(*cl))
}

// Delete godoc
// @Summary      Eliminar cliente (las ventas pasadas conservan su nombre denormalizado)
// @Tags         clients
// @Security     Bearer
// @Param        id  path  int  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	sess, err := resolveSession(c, h.sessions)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	if !sess.Store.DeleteClient(id) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toClientResponse(cl entity.Client) dto.ClientResponse {
	history := cl.PurchaseHistory
	if history == nil {
		history = []entity.ProductPurchase{}
	}
	return dto.ClientResponse{
		ID:              cl.ID,
		Name:            cl.Name,
		Email:           cl.Email,
		Phone:           cl.Phone,
		PurchaseCount:   cl.PurchaseCount,
		TotalSpend:      cl.TotalSpend,
		LastPurchase:    cl.LastPurchase,
		PurchaseHistory: history,
		CreatedAt:       cl.CreatedAt,
	}
}

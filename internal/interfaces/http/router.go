package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Negocio-api/internal/application/auth"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/gst"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Sessions       *session.Manager
	SaleUC         *usecase.SaleUseCase
	DocumentUC     *usecase.DocumentUseCase
	GSTClient      *gst.Client
	JWTSecret      string
	ExpiryWarnDays int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (register/login público; logout requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token y sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Sessions)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/restock", productHandler.Restock)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sessions, deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Delete("/:id", saleHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.Sessions)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Payments (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.Sessions)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Put("/:id/status", paymentHandler.UpdateStatus)
	payments.Delete("/:id", paymentHandler.Delete)

	// Agenda: reuniones y vencimientos (protegido)
	agendaHandler := NewAgendaHandler(deps.Sessions, deps.ExpiryWarnDays)
	meetings := protected.Group("/meetings")
	meetings.Post("/", agendaHandler.CreateMeeting)
	meetings.Get("/", agendaHandler.ListMeetings)
	meetings.Delete("/:id", agendaHandler.DeleteMeeting)
	expiries := protected.Group("/expiries")
	expiries.Post("/", agendaHandler.CreateExpiry)
	expiries.Get("/", agendaHandler.ListExpiries)
	expiries.Delete("/:id", agendaHandler.DeleteExpiry)

	// Sync (protegido)
	syncGroup := protected.Group("/sync")
	syncHandler := NewSyncHandler(deps.Sessions)
	syncGroup.Post("/save", syncHandler.Save)
	syncGroup.Post("/refresh", syncHandler.Refresh)
	syncGroup.Put("/auto", syncHandler.SetAutoSync)
	syncGroup.Get("/status", syncHandler.Status)

	// Documents: cotizaciones y remisiones (protegido, almacén local)
	documentHandler := NewDocumentHandler(deps.Sessions, deps.DocumentUC)
	estimates := protected.Group("/estimates")
	estimates.Post("/", documentHandler.CreateEstimate)
	estimates.Get("/", documentHandler.ListEstimates)
	estimates.Get("/:id/pdf", documentHandler.EstimatePDF)
	estimates.Delete("/:id", documentHandler.DeleteEstimate)
	challans := protected.Group("/challans")
	challans.Post("/", documentHandler.CreateChallan)
	challans.Get("/", documentHandler.ListChallans)
	challans.Get("/:id/pdf", documentHandler.ChallanPDF)
	challans.Delete("/:id", documentHandler.DeleteChallan)

	// GST lookup (protegido)
	gstHandler := NewGSTHandler(deps.GSTClient)
	protected.Post("/gst/lookup", gstHandler.Lookup)
}

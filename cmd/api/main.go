package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Negocio-api/internal/application/auth"
	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/application/usecase"
	"github.com/jhoicas/Negocio-api/internal/gst"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/boltdocs"
	infrapdf "github.com/jhoicas/Negocio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Negocio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Negocio-api/internal/interfaces/http"
	"github.com/jhoicas/Negocio-api/pkg/config"
	"github.com/jhoicas/Negocio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		FileEnable: cfg.Log.FileEnable,
		Filename:   cfg.Log.Filename,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	snapshotGateway := postgres.NewUserDataRepository(pool)

	docs, err := boltdocs.Open(cfg.Docs.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Docs.Path).Msg("abrir almacén de documentos")
	}
	defer docs.Close()

	// Bus de eventos de cambio: conecta el guardado de una sesión con el
	// listener de las demás sesiones del mismo usuario.
	bus := EventBus.New()
	sessions := session.NewManager(snapshotGateway, bus, cfg.Sync.AutoSync, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	saleUC := usecase.NewSaleUseCase()
	documentUC := usecase.NewDocumentUseCase(docs, infrapdf.NewMarotoPDFGenerator())
	gstClient := gst.NewClient(cfg.GST.LookupURL, time.Duration(cfg.GST.TimeoutSeconds)*time.Second)

	// Job diario: revisa vencimientos próximos y stock bajo de las sesiones
	// activas y los deja en el log como recordatorio operativo.
	scheduler := cron.New(cron.WithSeconds())
	if _, err := scheduler.AddFunc(cfg.Sync.ExpiryScanCron, func() {
		for _, sess := range sessions.Active() {
			expiring := sess.Store.ExpiringWithin(cfg.Sync.ExpiryWarnDays)
			lowStock := sess.Store.LowStockProducts()
			if len(expiring) == 0 && len(lowStock) == 0 {
				continue
			}
			log.Warn().
				Str("user_id", sess.UserID).
				Int("expiring", len(expiring)).
				Int("low_stock", len(lowStock)).
				Msg("revisión diaria: lotes por vencer o stock bajo")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Sync.ExpiryScanCron).Msg("programar revisión diaria")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Negocio Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Sessions:       sessions,
		SaleUC:         saleUC,
		DocumentUC:     documentUC,
		GSTClient:      gstClient,
		JWTSecret:      cfg.JWT.Secret,
		ExpiryWarnDays: cfg.Sync.ExpiryWarnDays,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

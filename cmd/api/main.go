package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/EspacioDatos-api/docs"
	"github.com/jhoicas/EspacioDatos-api/internal/bootstrap"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/access"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/events"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/EspacioDatos-api/internal/interfaces/http"
	"github.com/jhoicas/EspacioDatos-api/pkg/config"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

// @title                      Espacio de Datos API
// @version                    1.0
// @description                Captación, diagnóstico e incorporación de empresas a espacios de datos.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	storage, err := bootstrap.OpenStorage(ctx, cfg, true, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer storage.Close()

	m := metrics.New()
	publisher, closePublisher, err := events.NewPublisher(cfg.NATS, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a NATS")
	}
	defer func() {
		if err := closePublisher(); err != nil {
			log.Warn().Err(err).Msg("cerrar publicador de eventos")
		}
	}()

	svc := bootstrap.NewServices(cfg, storage, m.Publisher(publisher), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Espacio de Datos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	deps := httpRouter.RouterDeps{
		AuthUC:        svc.Auth,
		UserUC:        svc.Users,
		CompanyUserUC: svc.CompanyUsers,
		LeadImportUC:  svc.LeadImport,
		LifecycleUC:   svc.Lifecycle,
		DashboardUC:   svc.Dashboard,
		ReportUC:      svc.Report,
		Users:         storage.Repos.Users,
		Policy:        access.DefaultPolicy(),
		JWTSecret:     cfg.JWT.Secret,
	}
	if cfg.App.SeedEnabled {
		deps.SeedUC = svc.Seed
		log.Warn().Msg("endpoints de datos demo habilitados (SEED_ENABLED)")
	}
	httpRouter.Router(app, deps)

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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tu-usuario/docflow-api/internal/application/auth"
	appdocument "github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/application/usecase"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/database"
	infraexport "github.com/tu-usuario/docflow-api/internal/infrastructure/export"
	infrapdf "github.com/tu-usuario/docflow-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/docflow-api/internal/infrastructure/redisstore"
	httpRouter "github.com/tu-usuario/docflow-api/internal/interfaces/http"
	"github.com/tu-usuario/docflow-api/pkg/config"
	"github.com/tu-usuario/docflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := database.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	bankRepo := postgres.NewBankAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	sessions := redisstore.NewSessionStore(redisClient)

	authUC := auth.NewUseCase(userRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, time.Duration(cfg.Auth.LoginTimeoutSeconds)*time.Second, log)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo, companyRepo)
	bankUC := usecase.NewBankAccountUseCase(bankRepo, companyRepo)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo)

	documentUC := appdocument.NewUseCase(
		txRunner, docRepo, companyRepo, brandRepo, bankRepo,
		infrapdf.NewMarotoGenerator(),
		infraexport.NewXMLBuilder(),
		infraexport.NewXLSXRegister(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DocFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		BrandUC:    brandUC,
		BankUC:     bankUC,
		ProductUC:  productUC,
		DocumentUC: documentUC,
		JWTSecret:  cfg.JWT.Secret,
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

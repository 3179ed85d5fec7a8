package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/pos-movil/internal/application/auth"
	"github.com/tu-usuario/pos-movil/internal/application/catalog"
	"github.com/tu-usuario/pos-movil/internal/application/customers"
	"github.com/tu-usuario/pos-movil/internal/application/reports"
	"github.com/tu-usuario/pos-movil/internal/application/sales"
	infrapdf "github.com/tu-usuario/pos-movil/internal/infrastructure/pdf"
	"github.com/tu-usuario/pos-movil/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/pos-movil/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/pos-movil/internal/interfaces/http"
	"github.com/tu-usuario/pos-movil/pkg/config"
	"github.com/tu-usuario/pos-movil/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin él no hay rate limit ni caché del dashboard.
	var authLimiter httpRouter.AuthLimiter
	var summaryCache reports.SummaryCache
	if cfg.Redis.Enabled() {
		redisClient, err := infraredis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		authLimiter = infraredis.NewLimiter(redisClient, cfg.RateLimit.Max,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
		summaryCache = infraredis.NewSummaryCache(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis conectado")
	} else {
		log.Warn().Msg("redis no configurado: sin rate limit ni caché")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	importUC := catalog.NewImportProductsUseCase(productRepo, categoryRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	customerUC := customers.NewCustomerUseCase(customerRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, productRepo, customerRepo)
	listSalesUC := sales.NewListSalesUseCase(saleRepo, customerRepo)
	deleteSaleUC := sales.NewDeleteSaleUseCase(txRunner, saleRepo)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, customerRepo, receiptGenerator)

	dashboardUC := reports.NewDashboardUseCase(reportRepo, summaryCache)

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
		Title:    "POS Móvil API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		ImportUC:    importUC,
		CategoryUC:  categoryUC,
		CustomerUC:  customerUC,
		CreateSale:  createSaleUC,
		ListSales:   listSalesUC,
		DeleteSale:  deleteSaleUC,
		Receipt:     receiptUC,
		DashboardUC: dashboardUC,
		AuthLimiter: authLimiter,
		JWTSecret:   cfg.JWT.Secret,
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

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

	"github.com/jhoicas/stock-management-api/internal/application/auth"
	"github.com/jhoicas/stock-management-api/internal/application/billing"
	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/application/usecase"
	"github.com/jhoicas/stock-management-api/internal/infrastructure/email"
	"github.com/jhoicas/stock-management-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-management-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/stock-management-api/internal/interfaces/http"
	"github.com/jhoicas/stock-management-api/pkg/config"
	"github.com/jhoicas/stock-management-api/pkg/logger"
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

	itemRepo := postgres.NewItemRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Mailer: SMTP real si está configurado; si no, correos al log.
	var mailer appstock.Mailer
	if cfg.SMTP.Host != "" {
		mailer = email.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		log.Warn().Msg("SMTP no configurado: los correos se escriben al log")
		mailer = email.NewLogMailer(log)
	}

	// Publicador del dashboard: Redis si está configurado; si no, al log.
	var publisher appstock.RealtimePublisher
	if cfg.Redis.Addr != "" {
		redisPub, err := realtime.NewRedisPublisher(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisPub.Close()
		publisher = redisPub
	} else {
		log.Warn().Msg("Redis no configurado: las actualizaciones del dashboard se escriben al log")
		publisher = realtime.NewLogPublisher(log)
	}

	// Notificador de stock + observadores. El orden de registro es el orden
	// de entrega del fan-out.
	notifier := appstock.NewNotifier(txRunner, log)
	dashboard := appstock.NewDashboardObserver(publisher, log, cfg.Redis.Channel, cfg.Stock.LowThreshold)
	notifier.Register(appstock.NewLowStockAlertObserver(log, cfg.Stock.LowThreshold, cfg.Stock.CriticalThreshold))
	notifier.Register(appstock.NewEmailNotificationObserver(mailer, log, cfg.Stock.SignificantChange, cfg.Stock.LargeIncrease))
	notifier.Register(appstock.NewAuditLogObserver(auditRepo, log))
	notifier.Register(dashboard)
	notifier.Register(appstock.NewAutoReorderObserver(poRepo, mailer, log, cfg.Stock.ReorderPoint, cfg.Stock.TargetStock, cfg.Stock.StandardReorderQty))

	itemUC := usecase.NewItemUseCase(itemRepo, notifier)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	poUC := usecase.NewPurchaseOrderUseCase(poRepo)
	createBillUC := billing.NewCreateBillUseCase(billRepo, notifier)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Stock Management API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:          itemUC,
		AuditUC:         auditUC,
		PurchaseOrderUC: poUC,
		CreateBill:      createBillUC,
		AuthUC:          authUC,
		Dashboard:       dashboard,
		JWTSecret:       cfg.JWT.Secret,
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

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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/lop-gin/nexus-backoffice/internal/application/auth"
	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/cache"
	infrapdf "github.com/lop-gin/nexus-backoffice/internal/infrastructure/pdf"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/postgres"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/queue"
	httpRouter "github.com/lop-gin/nexus-backoffice/internal/interfaces/http"
	"github.com/lop-gin/nexus-backoffice/pkg/config"
	"github.com/lop-gin/nexus-backoffice/pkg/jwt"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: "api",
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
	companyRepo := postgres.NewCompanyRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin REDIS_ADDR no hay caché de permisos ni expiración programada
	// (el barrido periódico de cmd/worker sigue cubriendo las invitaciones vencidas).
	var permCache ports.PermissionCache
	var expiryScheduler ports.InvitationExpiryScheduler
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, caché de permisos desactivada")
		} else {
			defer rdb.Close()
			permCache = cache.NewPermissionCache(rdb, cfg.Cache.PermissionTTL())
		}
		queueClient := queue.NewClient(cfg.Redis)
		defer queueClient.Close()
		expiryScheduler = queueClient
	}

	authzSvc := usecase.NewAuthorizationService(employeeRepo, moduleRepo, permissionRepo, permCache, log)
	authUC := auth.NewAuthUseCase(userRepo, employeeRepo, txRunner, jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration), log)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, roleRepo)
	roleUC := usecase.NewRoleUseCase(roleRepo, permissionRepo, moduleRepo, employeeRepo, permCache, log)
	moduleSvc := usecase.NewModuleService(moduleRepo)
	invitationUC := usecase.NewInvitationUseCase(txRunner, invitationRepo, employeeRepo, roleRepo, expiryScheduler, cfg.Invitation.TTL(), log)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	// PDF: matriz de permisos de un rol
	roleReportUC := usecase.NewRoleReportUseCase(roleRepo, permissionRepo, moduleRepo, companyRepo, infrapdf.NewMarotoRoleReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nexus Back-office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Authz:        authzSvc,
		CompanyUC:    companyUC,
		EmployeeUC:   employeeUC,
		RoleUC:       roleUC,
		ModuleSvc:    moduleSvc,
		RoleReportUC: roleReportUC,
		InvitationUC: invitationUC,
		CustomerUC:   customerUC,
		ProductUC:    productUC,
		JWTSecret:    cfg.JWT.Secret,
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

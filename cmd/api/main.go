package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
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

	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos")
	}
	defer db.Close()

	if err := sqlite.NewMigrationService(db, log).RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	userRoleRepo := sqlite.NewUserRoleRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	fileRepo := sqlite.NewFileRepository(db)

	blobStore, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar directorio de subidas")
	}

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, userRoleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.DefaultRole, cfg.Auth.BcryptCost)
	userUC := usecase.NewUserUseCase(userRepo, userRoleRepo, cfg.Auth.BcryptCost)
	roleUC := usecase.NewRoleUseCase(roleRepo, userRoleRepo, userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	fileUC := usecase.NewFileUseCase(fileRepo, blobStore, usecase.UploadLimits{
		MaxSizeBytes:      cfg.Upload.MaxSizeBytes(),
		AllowedExtensions: cfg.Upload.AllowedExtensions,
	}, log)

	if cfg.Auth.EnableAdminBootstrap {
		bootstrap := auth.NewBootstrap(userRepo, roleRepo, userRoleRepo, auth.BootstrapConfig{
			AdminEmail:     cfg.Auth.AdminEmail,
			AdminPassword:  cfg.Auth.AdminPassword,
			AdminFirstName: cfg.Auth.AdminFirstName,
			AdminLastName:  cfg.Auth.AdminLastName,
			BcryptCost:     cfg.Auth.BcryptCost,
		}, log)
		if err := bootstrap.Run(); err != nil {
			log.Fatal().Err(err).Msg("bootstrap de roles y admin")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Upload.MaxSizeBytes()) + 1024*1024, // margen para el overhead multipart
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	healthHandler := httpRouter.NewHealthHandler()
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		RoleUC:    roleUC,
		ProductUC: productUC,
		FileUC:    fileUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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

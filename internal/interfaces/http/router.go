package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	RoleUC    *usecase.RoleUseCase
	ProductUC *usecase.ProductUseCase
	FileUC    *usecase.FileUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API con sus gates de autorización.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authn := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (register con auth opcional: un admin autenticado puede fijar roles)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", OptionalAuthMiddleware(deps.JWTSecret, deps.AuthUC), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Users
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users := api.Group("/users", authn)
	users.Get("/me/profile", userHandler.MyProfile)
	users.Put("/me/profile", userHandler.UpdateMyProfile)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)    // gate self-or-admin dentro del handler
	users.Put("/:id", userHandler.Update)     // idem; isActive solo admin
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Roles (todo admin-only)
	roleHandler := NewRoleHandler(deps.RoleUC, deps.Log)
	users.Get("/:userId/roles", adminOnly, roleHandler.RolesByUser)
	roles := api.Group("/roles", authn, adminOnly)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Post("/assign", roleHandler.Assign)
	roles.Post("/remove", roleHandler.Remove)
	roles.Get("/:roleId/users", roleHandler.UsersByRole)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Products (lecturas públicas, escrituras admin)
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/stock/available", productHandler.ListAvailable)
	products.Get("/category/:category", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, adminOnly, productHandler.Create)
	products.Put("/:id", authn, adminOnly, productHandler.Update)
	products.Patch("/:id/stock", authn, adminOnly, productHandler.UpdateStock)
	products.Delete("/:id", authn, adminOnly, productHandler.Delete)

	// Files (autenticado; vistas admin aparte)
	fileHandler := NewFileHandler(deps.FileUC, deps.Log)
	files := api.Group("/files", authn)
	files.Post("/upload", fileHandler.Upload)
	files.Get("/stats/overview", fileHandler.Stats)
	files.Get("/admin/all", adminOnly, fileHandler.ListAll)
	files.Get("/", fileHandler.List)
	files.Get("/:id/download", fileHandler.Download)
	files.Get("/:id", fileHandler.GetByID)
	files.Put("/:id", fileHandler.Update)
	files.Delete("/:id", fileHandler.Delete)
}

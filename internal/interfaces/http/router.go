package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/token"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	Codec     *token.Codec
	UserRepo  repository.UserRepository
	Env       string
}

// Router registra las rutas de la API.
// Toda petición protegida pasa AuthMiddleware y, si la ruta lo pide,
// RequireRole; register/login/recuperación van directo al use case.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Codec, deps.Env)
	userHandler := NewUserHandler(deps.UserUC, deps.Env)
	productHandler := NewProductHandler(deps.ProductUC, deps.Env)

	// Auth (público)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/logout", authHandler.Logout)
	api.Post("/password/forgot", authHandler.ForgotPassword)
	api.Put("/password/reset/:token", authHandler.ResetPassword)

	// Catálogo (público)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	// Rutas protegidas (requieren cookie de sesión válida)
	protected := api.Group("/", AuthMiddleware(deps.Codec, deps.UserRepo))
	protected.Get("/me", authHandler.Me)
	protected.Put("/password/update", authHandler.UpdatePassword)
	protected.Put("/profile/update", authHandler.UpdateProfile)
	protected.Put("/reviews", productHandler.CreateReview)
	protected.Get("/reviews", productHandler.ListReviews)

	// Rutas de administración (sesión + rol admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Delete("/reviews", productHandler.DeleteReview)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.GetByID)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/auth"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/export"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	ExportUC  *export.UseCase
	JWTSecret string
}

// Router regista as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// SAFT (protegido; exportar é restrito a admin e financeiro)
	saftGroup := api.Group("/saft", AuthMiddleware(deps.JWTSecret))
	saftHandler := NewSAFTHandler(deps.ExportUC)
	saftGroup.Post("/export", RequireRoles(entity.RoleAdmin, entity.RoleFinanceiro), saftHandler.Export)
	saftGroup.Post("/validate", saftHandler.Validate)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/docflow-api/internal/application/auth"
	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/application/usecase"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CompanyUC  *usecase.CompanyUseCase
	BrandUC    *usecase.BrandUseCase
	BankUC     *usecase.BankAccountUseCase
	ProductUC  *usecase.ProductUseCase
	DocumentUC *document.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Política de acceso (espejo del guard de rutas de la consola):
//   - manager y admin → documentos y catálogo de productos.
//   - accountant y admin → gestión de empresas (marcas, cuentas) y el
//     registro contable.
//   - admin entra a todo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, el resto requiere token.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret, deps.AuthUC), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret, deps.AuthUC), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token con sesión viva).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))

	manager := RequireRole(entity.RoleManager, entity.RoleAdmin)
	accountant := RequireRole(entity.RoleAccountant, entity.RoleAdmin)

	// Empresas y datos de referencia (contabilidad).
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.BrandUC, deps.BankUC)
	companies := protected.Group("/companies", accountant)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/brands", companyHandler.CreateBrand)
	companies.Get("/:id/brands", companyHandler.ListBrands)
	companies.Post("/:id/bank-accounts", companyHandler.CreateBankAccount)
	companies.Get("/:id/bank-accounts", companyHandler.ListBankAccounts)
	protected.Delete("/brands/:brandId", accountant, companyHandler.DeleteBrand)
	protected.Delete("/bank-accounts/:accountId", accountant, companyHandler.DeleteBankAccount)

	// Documentos versionados (gestión).
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents := protected.Group("/documents")
	// El registro contable va antes de /:id para que "register" no matchee como ID.
	documents.Get("/register", accountant, documentHandler.ExportRegister)
	documents.Post("/", manager, documentHandler.Create)
	documents.Get("/", manager, documentHandler.List)
	documents.Get("/:id", manager, documentHandler.GetByID)
	documents.Delete("/:id", manager, documentHandler.Delete)
	documents.Post("/:id/versions", manager, documentHandler.AddVersion)
	documents.Get("/:id/versions", manager, documentHandler.ListVersions)
	documents.Patch("/:id/status", manager, documentHandler.UpdateStatus)
	documents.Post("/:id/versions/:versionId/generate", manager, documentHandler.Generate)

	// Catálogo de productos (gestión).
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products", manager)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-movil/internal/application/auth"
	"github.com/tu-usuario/pos-movil/internal/application/catalog"
	"github.com/tu-usuario/pos-movil/internal/application/customers"
	"github.com/tu-usuario/pos-movil/internal/application/reports"
	"github.com/tu-usuario/pos-movil/internal/application/sales"
	"github.com/tu-usuario/pos-movil/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	ImportUC    *catalog.ImportProductsUseCase
	CategoryUC  *catalog.CategoryUseCase
	CustomerUC  *customers.CustomerUseCase
	CreateSale  *sales.CreateSaleUseCase
	ListSales   *sales.ListSalesUseCase
	DeleteSale  *sales.DeleteSaleUseCase
	Receipt     *sales.ReceiptUseCase
	DashboardUC *reports.DashboardUseCase
	AuthLimiter AuthLimiter // nil = sin rate limit
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit por IP)
	authGroup := api.Group("/auth", RateLimitMiddleware(deps.AuthLimiter))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; alta, edición e import solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ImportUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Post("/import", RequireRole(entity.RoleAdmin), productHandler.Import)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Categories (protegido; escritura solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", RequireRole(entity.RoleAdmin), categoryHandler.Create)
	categories.Put("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Customers (protegido)
	customerGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customerGroup.Post("/", customerHandler.Create)
	customerGroup.Get("/", customerHandler.List)
	customerGroup.Get("/:id", customerHandler.GetByID)
	customerGroup.Put("/:id", customerHandler.Update)
	customerGroup.Delete("/:id", customerHandler.Delete)

	// Sales (protegido; la propiedad se valida en el caso de uso)
	saleGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ListSales, deps.DeleteSale, deps.Receipt)
	saleGroup.Post("/", saleHandler.Create)
	saleGroup.Get("/", saleHandler.List)
	saleGroup.Get("/:id", saleHandler.GetByID)
	saleGroup.Get("/:id/receipt", saleHandler.Receipt)
	saleGroup.Delete("/:id", saleHandler.Delete)

	// Reports (protegido, solo admin)
	reportGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.DashboardUC)
	reportGroup.Get("/dashboard", reportHandler.Summary)
}

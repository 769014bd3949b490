package router

import (
	"github.com/menudash/backend/internal/interfaces/http/handler"
)

// CatalogHandlers are the handlers served under the API prefix
type CatalogHandlers struct {
	Company        *handler.CompanyHandler
	Category       *handler.CategoryHandler
	Complement     *handler.ComplementHandler
	ComplementForm *handler.ComplementFormHandler
	Item           *handler.ItemHandler
	Product        *handler.ProductHandler
	System         *handler.SystemHandler
}

// CatalogRoutes builds the route groups of the catalog API
func CatalogRoutes(h CatalogHandlers) []RouteRegistrar {
	companies := NewResource("companies", "/companies").
		POST("", h.Company.Create).
		GET("", h.Company.List).
		GET("/slug/:slug", h.Company.GetBySlug).
		GET("/:id", h.Company.GetByID).
		PUT("/:id", h.Company.Edit).
		GET("/:id/categories", h.Category.ListByCompany).
		GET("/:id/complements", h.Complement.ListByCompany).
		POST("/:id/complements/form", h.ComplementForm.Create)

	categories := NewResource("categories", "/categories").
		POST("", h.Category.Create).
		GET("/:id", h.Category.GetByID).
		PUT("/:id", h.Category.Edit).
		DELETE("/:id", h.Category.Delete)

	complements := NewResource("complements", "/complements").
		POST("", h.Complement.Create).
		GET("/:id", h.Complement.GetByID).
		PUT("/:id", h.Complement.Edit).
		DELETE("/:id", h.Complement.Delete).
		GET("/:id/form", h.ComplementForm.Load).
		PUT("/:id/form", h.ComplementForm.Submit)

	items := NewResource("items", "/items").
		POST("", h.Item.Create).
		PUT("/:id", h.Item.Edit).
		DELETE("/:id", h.Item.Delete)

	products := NewResource("products", "/products").
		POST("", h.Product.Create).
		GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Edit).
		DELETE("/:id", h.Product.Delete).
		POST("/:id/image", h.Product.RequestImageUpload)

	system := NewResource("system", "/system").
		GET("/ping", h.System.Ping)

	return []RouteRegistrar{companies, categories, complements, items, products, system}
}

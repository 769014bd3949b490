// Package docs holds the OpenAPI document served by the swagger UI.
// Regenerate it with `swag init --v3.1 -g cmd/server/main.go -o docs`.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "/api/v1"}],
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "in": "header",
                "name": "Authorization",
                "description": "Session token issued by the authentication provider. Format: \"Bearer {token}\""
            }
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/companies": {
            "get": {"operationId": "listCompanies", "tags": ["companies"], "summary": "List the companies of the current user", "responses": {"200": {"description": "OK"}}},
            "post": {"operationId": "createCompany", "tags": ["companies"], "summary": "Create a company", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/companies/slug/{slug}": {
            "get": {"operationId": "getCompanyBySlug", "tags": ["companies"], "summary": "Get a company by slug", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/companies/{id}": {
            "get": {"operationId": "getCompany", "tags": ["companies"], "summary": "Get a company", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"operationId": "editCompany", "tags": ["companies"], "summary": "Edit a company", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/companies/{id}/categories": {
            "get": {"operationId": "listCompanyCategories", "tags": ["categories"], "summary": "List a company's categories", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{id}/complements": {
            "get": {"operationId": "listCompanyComplements", "tags": ["complements"], "summary": "List a company's complements", "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{id}/complements/form": {
            "post": {"operationId": "createComplementForm", "tags": ["complement-form"], "summary": "Submit the complement form in create mode", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/categories": {
            "post": {"operationId": "createCategory", "tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Created"}, "409": {"description": "Category already exists"}}}
        },
        "/categories/{id}": {
            "get": {"operationId": "getCategory", "tags": ["categories"], "summary": "Get a category", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"operationId": "editCategory", "tags": ["categories"], "summary": "Rename a category", "responses": {"200": {"description": "OK"}, "409": {"description": "Category already exists"}}},
            "delete": {"operationId": "deleteCategory", "tags": ["categories"], "summary": "Delete a category", "responses": {"204": {"description": "No Content"}}}
        },
        "/complements": {
            "post": {"operationId": "createComplement", "tags": ["complements"], "summary": "Create a complement", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/complements/{id}": {
            "get": {"operationId": "getComplement", "tags": ["complements"], "summary": "Get a complement with its items", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"operationId": "editComplement", "tags": ["complements"], "summary": "Edit a complement", "responses": {"200": {"description": "OK"}}},
            "delete": {"operationId": "deleteComplement", "tags": ["complements"], "summary": "Delete a complement", "responses": {"204": {"description": "No Content"}}}
        },
        "/complements/{id}/form": {
            "get": {"operationId": "loadComplementForm", "tags": ["complement-form"], "summary": "Load a complement into the edit form", "responses": {"200": {"description": "OK"}}},
            "put": {"operationId": "submitComplementForm", "tags": ["complement-form"], "summary": "Submit the complement edit form", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/items": {
            "post": {"operationId": "createItems", "tags": ["items"], "summary": "Append items to a complement", "responses": {"201": {"description": "Created"}}}
        },
        "/items/{id}": {
            "put": {"operationId": "editItem", "tags": ["items"], "summary": "Edit a complement item", "responses": {"200": {"description": "OK"}}},
            "delete": {"operationId": "deleteItem", "tags": ["items"], "summary": "Delete a complement item", "responses": {"204": {"description": "No Content"}}}
        },
        "/products": {
            "get": {"operationId": "listProducts", "tags": ["products"], "summary": "List the products of the current user's companies", "responses": {"200": {"description": "OK"}}},
            "post": {"operationId": "createProduct", "tags": ["products"], "summary": "Create a product", "responses": {"201": {"description": "Created"}}}
        },
        "/products/{id}": {
            "get": {"operationId": "getProduct", "tags": ["products"], "summary": "Get a product", "responses": {"200": {"description": "OK"}}},
            "put": {"operationId": "editProduct", "tags": ["products"], "summary": "Edit a product", "responses": {"200": {"description": "OK"}}},
            "delete": {"operationId": "deleteProduct", "tags": ["products"], "summary": "Delete a product", "responses": {"204": {"description": "No Content"}}}
        },
        "/products/{id}/image": {
            "post": {"operationId": "requestProductImageUpload", "tags": ["products"], "summary": "Get a presigned product image upload URL", "responses": {"200": {"description": "OK"}, "503": {"description": "Image uploads are not enabled"}}}
        },
        "/system/ping": {
            "get": {"operationId": "pingSystem", "tags": ["system"], "summary": "Ping the API", "security": [], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Menu Catalog API",
	Description:      "Admin API of the restaurant menu catalog: companies, categories, products and complements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

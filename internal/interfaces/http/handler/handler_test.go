package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/application/catalog/form"
	"github.com/menudash/backend/internal/infrastructure/persistence"
	"github.com/menudash/backend/internal/infrastructure/persistence/models"
	"github.com/menudash/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testUserID = "user-owner"

// testAPI is the catalog API over an in-memory sqlite database
type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	userID string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_product_categories_company_name ON product_categories (company_id, name)",
	).Error)
	return db
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	middleware.SetupValidator()
	db := newTestDB(t)

	companyRepo := persistence.NewGormCompanyRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	complementRepo := persistence.NewGormComplementRepository(db)
	itemRepo := persistence.NewGormComplementItemRepository(db)
	productRepo := persistence.NewGormProductRepository(db)

	companies := catalogapp.NewCompanyService(companyRepo)
	categories := catalogapp.NewCategoryService(categoryRepo, productRepo)
	complements := catalogapp.NewComplementService(complementRepo, productRepo)
	items := catalogapp.NewItemService(complementRepo, itemRepo)
	products := catalogapp.NewProductService(productRepo, categoryRepo, nil)
	editor := form.NewComplementEditor(form.NewLocalGateway(complements, items, products), zaptest.NewLogger(t))

	api := &testAPI{t: t, userID: testUserID}
	engine := gin.New()
	engine.Use(middleware.RequestID(), func(c *gin.Context) {
		if api.userID != "" {
			c.Set(middleware.UserIDKey, api.userID)
		}
		c.Next()
	})

	companyHandler := NewCompanyHandler(companies)
	categoryHandler := NewCategoryHandler(categories)
	complementHandler := NewComplementHandler(complements)
	itemHandler := NewItemHandler(items)
	productHandler := NewProductHandler(products)
	formHandler := NewComplementFormHandler(editor)

	v1 := engine.Group("/api/v1")
	v1.POST("/companies", companyHandler.Create)
	v1.GET("/companies", companyHandler.List)
	v1.GET("/companies/:id", companyHandler.GetByID)
	v1.GET("/companies/slug/:slug", companyHandler.GetBySlug)
	v1.PUT("/companies/:id", companyHandler.Edit)
	v1.GET("/companies/:id/categories", categoryHandler.ListByCompany)
	v1.GET("/companies/:id/complements", complementHandler.ListByCompany)
	v1.POST("/companies/:id/complements/form", formHandler.Create)
	v1.POST("/categories", categoryHandler.Create)
	v1.GET("/categories/:id", categoryHandler.GetByID)
	v1.PUT("/categories/:id", categoryHandler.Edit)
	v1.DELETE("/categories/:id", categoryHandler.Delete)
	v1.POST("/complements", complementHandler.Create)
	v1.GET("/complements/:id", complementHandler.GetByID)
	v1.PUT("/complements/:id", complementHandler.Edit)
	v1.DELETE("/complements/:id", complementHandler.Delete)
	v1.GET("/complements/:id/form", formHandler.Load)
	v1.PUT("/complements/:id/form", formHandler.Submit)
	v1.POST("/items", itemHandler.Create)
	v1.PUT("/items/:id", itemHandler.Edit)
	v1.DELETE("/items/:id", itemHandler.Delete)
	v1.POST("/products", productHandler.Create)
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.GetByID)
	v1.PUT("/products/:id", productHandler.Edit)
	v1.DELETE("/products/:id", productHandler.Delete)
	v1.POST("/products/:id/image", productHandler.RequestImageUpload)

	api.engine = engine
	return api
}

// apiResult is a decoded response envelope
type apiResult struct {
	Status int
	APIResponse[json.RawMessage]
}

func (r apiResult) decode(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, out), "data: %s", string(r.Data))
}

func (a *testAPI) do(method, path string, body any) apiResult {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	res := apiResult{Status: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res), "body: %s", w.Body.String())
	}
	return res
}

// mustCreate runs a create call and decodes its data
func (a *testAPI) mustCreate(path string, body any, out any) {
	a.t.Helper()
	res := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, res.Status, "error: %+v", res.Error)
	res.decode(a.t, out)
}

func (a *testAPI) createCompany(name string) catalogapp.CompanyResponse {
	a.t.Helper()
	var company catalogapp.CompanyResponse
	a.mustCreate("/api/v1/companies", map[string]any{"name": name}, &company)
	return company
}

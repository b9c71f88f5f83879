package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetbook/internal/config"
	"budgetbook/internal/handlers"
	"budgetbook/internal/logger"
	"budgetbook/internal/middleware"
	"budgetbook/internal/models"
	"budgetbook/internal/services"
	"budgetbook/internal/validator"
)

const (
	testEmail    = "alex@example.com"
	testPassword = "household-secret"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	os.Setenv("AUTH_PASSWORD_HASH", string(hash))
	os.Setenv("HOUSEHOLD_EMAILS", "alex@example.com,sam@example.com")
	os.Setenv("JWT_SECRET", "integration-test-secret")
	if _, err := config.Load(); err != nil {
		panic(err)
	}
}

// testClock pins "today" so month mutability does not depend on when the
// tests run.
func testClock() time.Time {
	return time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Month{},
		&models.BudgetItem{},
		&models.BudgetItemVersion{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	monthService := services.NewMonthService(db)
	itemService := services.NewItemService(db)
	budgetService := services.NewBudgetService(db, testClock)

	// Handlers
	authHandler := handlers.NewAuthHandler()
	monthHandler := handlers.NewMonthHandler(monthService)
	itemHandler := handlers.NewItemHandler(itemService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	months := protected.Group("/months")
	months.POST("", monthHandler.CreateMonth)
	months.GET("", monthHandler.GetMonths)
	months.GET("/:month_id/items", budgetHandler.GetMonthItems)
	months.POST("/:month_id/items", itemHandler.CreateItem)
	months.PUT("/:month_id/items/:item_id/value", budgetHandler.SetItemValue)
	months.DELETE("/:month_id/items/:item_id", budgetHandler.RemoveItemFromMonth)

	items := protected.Group("/items")
	items.GET("", itemHandler.GetItems)
	items.PUT("/:item_id", itemHandler.UpdateItem)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login logs in with the household test credentials and returns the access token.
func (app *testApp) login(t *testing.T) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["access_token"].(string)
}

// createMonth creates a month via the API and fails the test on error.
func (app *testApp) createMonth(t *testing.T, token, key string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/months", fmt.Sprintf(`{"month":%q}`, key), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create month %s failed: %d %s", key, rec.Code, rec.Body.String())
	}
}

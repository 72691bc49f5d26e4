package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"civicpulse/internal/ai"
	"civicpulse/internal/database"
	"civicpulse/internal/handlers"
	"civicpulse/internal/logger"
	"civicpulse/internal/middleware"
	"civicpulse/internal/services"
	"civicpulse/internal/storage"
	"civicpulse/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	UploadDir string
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent), TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(database.Models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// setupApp creates the full API stack backed by an isolated in-memory SQLite,
// with the default accounts seeded.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	analyticsService := services.NewAnalyticsService(db, nil, services.AnalyticsOptions{RedZoneThreshold: 2})
	grievanceService := services.NewGrievanceService(db, auditService, analyticsService)
	if err := userService.SeedDefaultUsers(); err != nil {
		t.Fatalf("failed to seed users: %v", err)
	}

	uploadDir := t.TempDir()
	images, err := storage.NewLocal(uploadDir)
	if err != nil {
		t.Fatalf("failed to create image store: %v", err)
	}

	// Handlers
	routes := &handlers.Router{
		Auth:      handlers.NewAuthHandler(userService, auditService),
		Users:     handlers.NewUserHandler(userService, analyticsService),
		Grievance: handlers.NewGrievanceHandler(grievanceService, auditService, images, ai.Noop{}, 1<<20),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		AI:        handlers.NewAIHandler(ai.Noop{}),
		Audit:     handlers.NewAuditHandler(auditService),
	}

	// Router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())
	routes.Register(router.Group("/api"))

	return &testApp{DB: db, Router: router, UploadDir: uploadDir}
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

// data returns the envelope's data object.
func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	d, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", result)
	}
	return d
}

// dataList returns the envelope's data array.
func dataList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	d, ok := result["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array, got %v", result)
	}
	return d
}

// errorCode returns the code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", result)
	}
	return errObj["code"].(string)
}

// login authenticates a seeded or registered account and returns its token and user ID.
func (app *testApp) login(t *testing.T, email, role string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"role":%q}`, email, role)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	d := data(t, rec)
	user := d["user"].(map[string]interface{})
	return d["token"].(string), user["id"].(string)
}

// submit files a grievance as the given citizen and returns its code.
func (app *testApp) submit(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/grievances", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, rec)["id"].(string)
}

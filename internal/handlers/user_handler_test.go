package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/middleware"
	"civicpulse/internal/models"
	"civicpulse/internal/services"
)

func setupUserRouter(handler *UserHandler, role lifecycle.Role) *gin.Engine {
	r := gin.New()
	r.Use(injectUser("admin-1", role))
	r.GET("/users", handler.ListUsers)
	r.GET("/users/role/:role", handler.ListUsersByRole)
	r.GET("/users/:id", handler.GetUser)
	r.GET("/users/:id/performance", handler.GetPerformance)
	r.POST("/users/:id/warnings", middleware.RequireRoles(lifecycle.RoleAdmin), handler.AddWarning)
	r.POST("/users/:id/appreciations", middleware.RequireRoles(lifecycle.RoleAdmin), handler.AddAppreciation)
	return r
}

func TestUserHandler_List(t *testing.T) {
	t.Run("lists every user", func(t *testing.T) {
		svc := &mockUserService{
			listUsersFn: func() ([]models.User, error) {
				return []models.User{{Name: "A"}, {Name: "B"}}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAnalyticsService{}), lifecycle.RoleAdmin)

		rec := doRequest(r, "GET", "/users", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if items, _ := parseJSON(t, rec)["data"].([]interface{}); len(items) != 2 {
			t.Errorf("expected 2 users, got %d", len(items))
		}
	})

	t.Run("filters by role", func(t *testing.T) {
		var got lifecycle.Role
		svc := &mockUserService{
			listUsersByRoleFn: func(role lifecycle.Role) ([]models.User, error) {
				got = role
				return []models.User{{Name: "Officer", Role: role}}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAnalyticsService{}), lifecycle.RoleAdmin)

		rec := doRequest(r, "GET", "/users/role/OFFICER", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != lifecycle.RoleOfficer {
			t.Errorf("expected OFFICER, got %s", got)
		}
	})

	t.Run("returns 400 on unknown role", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAnalyticsService{}), lifecycle.RoleAdmin)

		rec := doRequest(r, "GET", "/users/role/MAYOR", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestUserHandler_Get(t *testing.T) {
	svc := &mockUserService{
		getUserByIDFn: func(id string) (*models.User, error) {
			if id == "missing" {
				return nil, apperrors.ErrUserNotFound
			}
			return &models.User{Base: models.Base{ID: id}, Name: "Found"}, nil
		},
	}
	r := setupUserRouter(NewUserHandler(svc, &mockAnalyticsService{}), lifecycle.RoleCitizen)

	t.Run("returns the user", func(t *testing.T) {
		rec := doRequest(r, "GET", "/users/u-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if id := dataObject(t, parseJSON(t, rec))["id"]; id != "u-1" {
			t.Errorf("expected u-1, got %v", id)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		rec := doRequest(r, "GET", "/users/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
	})
}

func TestUserHandler_Counters(t *testing.T) {
	t.Run("admin records a warning", func(t *testing.T) {
		var gotActor services.Actor
		svc := &mockUserService{
			addWarningFn: func(actor services.Actor, id string) (*models.User, error) {
				gotActor = actor
				return &models.User{Base: models.Base{ID: id}, WarningsCount: 1}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAnalyticsService{}), lifecycle.RoleAdmin)

		rec := doRequest(r, "POST", "/users/officer-1/warnings", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if dataObject(t, parseJSON(t, rec))["warningsCount"] != float64(1) {
			t.Error("expected warningsCount 1")
		}
		if gotActor.UserID != "admin-1" {
			t.Errorf("expected admin actor, got %+v", gotActor)
		}
	})

	t.Run("admin records an appreciation", func(t *testing.T) {
		svc := &mockUserService{
			addAppreciationFn: func(_ services.Actor, id string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: id}, AppreciationsCount: 2}, nil
			},
		}
		r := setupUserRouter(NewUserHandler(svc, &mockAnalyticsService{}), lifecycle.RoleAdmin)

		rec := doRequest(r, "POST", "/users/officer-1/appreciations", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if dataObject(t, parseJSON(t, rec))["appreciationsCount"] != float64(2) {
			t.Error("expected appreciationsCount 2")
		}
	})

	t.Run("officers cannot warn", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}, &mockAnalyticsService{}), lifecycle.RoleOfficer)

		rec := doRequest(r, "POST", "/users/officer-2/warnings", "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestUserHandler_Performance(t *testing.T) {
	svc := &mockAnalyticsService{}
	r := setupUserRouter(NewUserHandler(&mockUserService{}, svc), lifecycle.RoleAdmin)

	rec := doRequest(r, "GET", "/users/officer-1/performance", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := dataObject(t, parseJSON(t, rec))
	if data["officerId"] != "officer-1" || data["averageRating"] != 4.5 {
		t.Errorf("unexpected performance %v", data)
	}
}

package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/urbanassist/urban-assist/db"
	"github.com/urbanassist/urban-assist/models"
	"github.com/urbanassist/urban-assist/routes"
)

// setupTestApp wires the full HTTP surface against a fresh in-memory
// database. Redis stays nil, so the token blacklist check is skipped.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Runner{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Payment{},
	))
	db.DB = gdb

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupAdminRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

// requestArray is request for endpoints that answer with a bare JSON array.
func requestArray(t *testing.T, app *fiber.App, method, path, token string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

// registerUser creates an account through the public endpoint and returns
// its access token plus user ID.
func registerUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()

	status, body := request(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "secret123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, status, fmt.Sprintf("%v", body))

	token := body["access_token"].(string)
	user := body["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

// becomeRunner creates a runner profile for the token's user and returns
// the runner profile ID.
func becomeRunner(t *testing.T, app *fiber.App, token string, hourlyRate float64) uint {
	t.Helper()

	status, body := request(t, app, http.MethodPost, "/runners/profile", token, fiber.Map{
		"hourly_rate": hourlyRate,
		"city":        "Austin",
		"country":     "USA",
	})
	require.Equal(t, http.StatusCreated, status, fmt.Sprintf("%v", body))

	runner := body["runner"].(map[string]interface{})
	return uint(runner["ID"].(float64))
}

func seedService(t *testing.T, name string) *models.Service {
	t.Helper()
	svc := &models.Service{Name: name, Category: "home", IsActive: true}
	require.NoError(t, db.DB.Create(svc).Error)
	return svc
}

// createBooking opens a pending booking through the API and returns its ID.
func createBooking(t *testing.T, app *fiber.App, token string, runnerID, serviceID uint, hours float64) uint {
	t.Helper()

	status, body := request(t, app, http.MethodPost, "/bookings/", token, fiber.Map{
		"runner_id":       runnerID,
		"service_id":      serviceID,
		"title":           "Grocery run",
		"scheduled_date":  "2026-09-15T10:00:00Z",
		"estimated_hours": hours,
	})
	require.Equal(t, http.StatusCreated, status, fmt.Sprintf("%v", body))

	booking := body["booking"].(map[string]interface{})
	return uint(booking["ID"].(float64))
}

// setStatus drives the booking state machine for the given actor.
func setStatus(t *testing.T, app *fiber.App, token string, bookingID uint, target string) (int, map[string]interface{}) {
	t.Helper()
	return request(t, app, http.MethodPut, fmt.Sprintf("/bookings/%d/status", bookingID), token, fiber.Map{
		"status": target,
	})
}

func loadRunner(t *testing.T, id uint) *models.Runner {
	t.Helper()
	var runner models.Runner
	require.NoError(t, db.DB.First(&runner, id).Error)
	return &runner
}

func loadBooking(t *testing.T, id uint) *models.Booking {
	t.Helper()
	var booking models.Booking
	require.NoError(t, db.DB.First(&booking, id).Error)
	return &booking
}

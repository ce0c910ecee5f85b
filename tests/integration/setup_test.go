package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fintrack/internal/credential"
	"fintrack/internal/logger"
	"fintrack/internal/metrics"
	"fintrack/internal/server"
	"fintrack/internal/testutil"
	"fintrack/internal/validator"
)

const testSecret = "integration-test-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Engine *credential.Engine
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	m, err := metrics.New("test")
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	engine := credential.NewEngine(testSecret, time.Hour)
	router := server.NewRouter(server.Deps{
		DB:             db,
		Engine:         engine,
		Metrics:        m,
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testApp{DB: db, Engine: engine, Router: router}
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

// errorCode returns the error code of an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// expectStatus fails the test if rec does not carry the wanted status.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// registerUser registers a new user and returns its id.
func (app *testApp) registerUser(t *testing.T, email, password string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/users", body, "")
	expectStatus(t, rec, http.StatusCreated)
	return uint(parseJSON(t, rec)["id"].(float64))
}

// loginUser logs in and returns the access token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	expectStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["access_token"].(string)
}

// signUp registers and logs in a user, returning its id and token.
func (app *testApp) signUp(t *testing.T, email string) (uint, string) {
	t.Helper()
	id := app.registerUser(t, email, "password123")
	return id, app.loginUser(t, email, "password123")
}

// create POSTs body to path and returns the new record's id.
func (app *testApp) create(t *testing.T, path, body, token string) uint {
	t.Helper()
	rec := app.request("POST", path, body, token)
	expectStatus(t, rec, http.StatusCreated)
	return uint(parseJSON(t, rec)["id"].(float64))
}

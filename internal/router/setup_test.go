package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ledger/internal/errors"
	"ledger/internal/logger"
	"ledger/internal/router"
	"ledger/internal/testutil"
	"ledger/internal/validator"
)

const testAdminKey = "test-admin-key"

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// fixedRate is a rate source that always answers with the same quote.
type fixedRate struct {
	rate decimal.Decimal
	err  error
}

func (f fixedRate) Rate(context.Context) (decimal.Decimal, error) {
	return f.rate, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWith(t, router.Options{
		Rates:       fixedRate{rate: decimal.NewFromInt(1000)},
		AdminAPIKey: testAdminKey,
	})
}

func setupAppWith(t *testing.T, opts router.Options) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	opts.DB = db
	return &testApp{DB: db, Router: router.New(opts)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
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

// parseJSONList parses the response body into a slice of objects.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// expectError asserts the status and error code of an error envelope.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, sentinel *apperrors.AppError) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	body := parseJSON(t, rec)
	envelope, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if envelope["code"] != sentinel.Code {
		t.Errorf("expected error code %q, got %v", sentinel.Code, envelope["code"])
	}
}

// mustCreate posts body to path, expects 201 and returns the new entity's id.
func (app *testApp) mustCreate(t *testing.T, path, body string) float64 {
	t.Helper()
	rec := app.request("POST", path, body)
	if rec.Code != 201 {
		t.Fatalf("POST %s failed: %d %s", path, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}

// balanceOf reads the account balance through the API.
func (app *testApp) balanceOf(t *testing.T, accountID float64) float64 {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/accounts/%.0f", accountID), "")
	if rec.Code != 200 {
		t.Fatalf("GET account failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["balance"].(float64)
}

func routerOptions(rates fixedRate, adminKey string) router.Options {
	return router.Options{Rates: rates, AdminAPIKey: adminKey}
}

package practitioner

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer(repo *mockRepo) *echo.Echo {
	e := echo.New()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Create(t *testing.T) {
	e := newTestServer(newMockRepo())

	rec := doJSON(e, http.MethodPost, "/api/v1/practitioners",
		`{"first_name":"Maya","last_name":"Chen","email":"maya@clinic.example","phone":"604-555-0101"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_Create_MissingFields(t *testing.T) {
	e := newTestServer(newMockRepo())

	rec := doJSON(e, http.MethodPost, "/api/v1/practitioners",
		`{"first_name":"Maya"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "required") {
		t.Errorf("expected the missing field in the message, got %s", rec.Body.String())
	}
}

// A storage failure on create must come back as an opaque server error, not
// as a client error carrying the driver's message.
func TestHandler_Create_StorageFault(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("connection refused")
	e := newTestServer(repo)

	rec := doJSON(e, http.MethodPost, "/api/v1/practitioners",
		`{"first_name":"Maya","last_name":"Chen","email":"maya@clinic.example","phone":"604-555-0101"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("storage error leaked to the client: %s", rec.Body.String())
	}
}

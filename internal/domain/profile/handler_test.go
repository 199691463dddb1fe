package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setupHandler() (*echo.Echo, *mockRepo) {
	e := echo.New()
	repo := newMockRepo()
	NewHandler(NewService(repo)).RegisterRoutes(e.Group("/api"))
	return e, repo
}

func TestUpdateHandler_OK(t *testing.T) {
	e, repo := setupHandler()
	id := uuid.New()
	repo.known[id] = true

	body := `{"firstName":"Pat","homeAddress":{"line1":"12 King St W","city":"Toronto","postalCode":"m5h 1a1"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/patients/"+id.String()+"/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if p.HomePostalCode == nil || *p.HomePostalCode != "M5H 1A1" {
		t.Errorf("expected normalized postal code in response, got %v", p.HomePostalCode)
	}
}

func TestUpdateHandler_StructuredAddresses(t *testing.T) {
	e, repo := setupHandler()
	id := uuid.New()
	repo.known[id] = true

	body := `{
		"firstName": "Pat",
		"lastName": "Singh",
		"dob": "1988-03-15",
		"healthCard": "1234-567-890",
		"phoneNumber": "555-0100",
		"homeAddress": {"line1": "12 King St W", "line2": "Unit 4", "city": "Toronto", "province": "ON", "postalCode": "m5h 1a1"},
		"mailingSameAsHome": false,
		"mailingAddress": {"line1": "PO Box 99", "city": "Ottawa", "postalCode": "k1a 0a6"}
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/patients/"+id.String()+"/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var p Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if p.HomeLine1 == nil || *p.HomeLine1 != "12 King St W" {
		t.Errorf("expected homeAddress object bound to home fields, got %v", p.HomeLine1)
	}
	if p.HomeLine2 == nil || *p.HomeLine2 != "Unit 4" {
		t.Errorf("expected home line2 stored, got %v", p.HomeLine2)
	}
	if p.MailingLine1 == nil || *p.MailingLine1 != "PO Box 99" {
		t.Errorf("expected mailingAddress object bound to mailing fields, got %v", p.MailingLine1)
	}
	if p.MailingPostalCode == nil || *p.MailingPostalCode != "K1A 0A6" {
		t.Errorf("expected mailing postal normalized, got %v", p.MailingPostalCode)
	}
}

func TestUpdateHandler_UnknownPatient(t *testing.T) {
	e, _ := setupHandler()

	req := httptest.NewRequest(http.MethodPut, "/api/patients/"+uuid.NewString()+"/profile", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateHandler_BadID(t *testing.T) {
	e, _ := setupHandler()

	req := httptest.NewRequest(http.MethodPut, "/api/patients/not-a-uuid/profile", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateHandler_BadDOB(t *testing.T) {
	e, repo := setupHandler()
	id := uuid.New()
	repo.known[id] = true

	req := httptest.NewRequest(http.MethodPut, "/api/patients/"+id.String()+"/profile",
		strings.NewReader(`{"dob":"31/12/1970"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetHandler_OK(t *testing.T) {
	e, repo := setupHandler()
	id := uuid.New()
	repo.known[id] = true
	repo.overview[id] = &Overview{PatientID: id, Email: "a@b.com"}

	req := httptest.NewRequest(http.MethodGet, "/api/patients/"+id.String()+"/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var o Overview
	if err := json.Unmarshal(rec.Body.Bytes(), &o); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if o.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", o.Email)
	}
}

func TestGetHandler_UnknownPatient(t *testing.T) {
	e, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/patients/"+uuid.NewString()+"/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

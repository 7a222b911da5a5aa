package center

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env testEnvelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response envelope: %v", err)
		}
	}
	return rec, env
}

func createCenter(t *testing.T, router http.Handler, body map[string]interface{}) Response {
	t.Helper()

	rec, env := doRequest(t, router, http.MethodPost, "/", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode center: %v", err)
	}
	return resp
}

func TestCreateCenter(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	resp := createCenter(t, router, map[string]interface{}{
		"name":    "Downtown",
		"address": "12 Main St",
		"phone":   "+7 (777) 123-45-67",
		"email":   "downtown@talx.local",
	})

	if resp.Name != "Downtown" {
		t.Fatalf("expected name Downtown, got %s", resp.Name)
	}
	if resp.Phone == nil || *resp.Phone != "+7 (777) 123-45-67" {
		t.Fatalf("expected phone recorded, got %v", resp.Phone)
	}
	if resp.Description != nil {
		t.Fatal("expected no description")
	}
}

func TestCreateCenterValidation(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	rec, env := doRequest(t, router, http.MethodPost, "/", map[string]interface{}{
		"name":  "Downtown",
		"phone": "call me maybe",
		"email": "not-an-email",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", env.Error)
	}
	for _, field := range []string{"address", "phone", "email"} {
		if _, ok := env.Error.Details[field]; !ok {
			t.Fatalf("expected %s detail, got %v", field, env.Error.Details)
		}
	}
}

func TestUpdateCenterClearsOptionalField(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	created := createCenter(t, router, map[string]interface{}{
		"name":    "Downtown",
		"address": "12 Main St",
		"phone":   "+7 777 1234567",
	})

	// An explicit empty string clears the optional field
	rec, env := doRequest(t, router, http.MethodPut, "/"+created.ID, map[string]interface{}{
		"phone": "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode center: %v", err)
	}
	if resp.Phone != nil {
		t.Fatalf("expected phone cleared, got %v", resp.Phone)
	}
	if resp.Address != "12 Main St" {
		t.Fatalf("patch must not touch address, got %s", resp.Address)
	}
}

func TestDeleteCenter(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	created := createCenter(t, router, map[string]interface{}{
		"name":    "Downtown",
		"address": "12 Main St",
	})

	rec, _ := doRequest(t, router, http.MethodDelete, "/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestGetCenterUnknownID(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	rec, _ := doRequest(t, router, http.MethodGet, "/9f0c2e8a-1111-4222-8333-444455556666", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/garbage", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

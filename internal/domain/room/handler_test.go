package room

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

func createRoom(t *testing.T, router http.Handler, name string) Response {
	t.Helper()

	rec, env := doRequest(t, router, http.MethodPost, "/", map[string]interface{}{
		"name":     name,
		"center":   "HQ",
		"capacity": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	return resp
}

func TestCreateDefaultsToAvailable(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	resp := createRoom(t, router, "Conference A")
	if resp.Status != string(StatusAvailable) {
		t.Fatalf("expected available, got %s", resp.Status)
	}
	if resp.Description != nil {
		t.Fatal("expected no description")
	}
}

func TestCreateValidatesStatus(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	rec, env := doRequest(t, router, http.MethodPost, "/", map[string]interface{}{
		"name":     "Conference A",
		"center":   "HQ",
		"capacity": 10,
		"status":   "broken",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", env.Error)
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	created := createRoom(t, router, "Conference A")

	rec, env := doRequest(t, router, http.MethodPut, "/"+created.ID, map[string]interface{}{
		"status":      "maintenance",
		"description": "projector broken",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode room: %v", err)
	}
	if resp.Status != string(StatusMaintenance) {
		t.Fatalf("expected maintenance, got %s", resp.Status)
	}
	if resp.Name != "Conference A" {
		t.Fatalf("patch must not touch name, got %s", resp.Name)
	}
	if resp.Description == nil || *resp.Description != "projector broken" {
		t.Fatalf("expected description patched, got %v", resp.Description)
	}
	if resp.UpdatedAt == nil {
		t.Fatal("expected updated_at set")
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	created := createRoom(t, router, "Conference A")

	rec, _ := doRequest(t, router, http.MethodPut, "/"+created.ID, map[string]interface{}{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestDeleteRemovesRoom(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	created := createRoom(t, router, "Conference A")

	rec, _ := doRequest(t, router, http.MethodDelete, "/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodGet, "/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	rec, _ = doRequest(t, router, http.MethodDelete, "/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestListReportsCount(t *testing.T) {
	router := NewHandler(NewMemoryRepository()).Routes()

	createRoom(t, router, "Conference A")
	createRoom(t, router, "Conference B")

	rec, env := doRequest(t, router, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Count == nil || *env.Count != 2 {
		t.Fatalf("expected count 2, got %v", env.Count)
	}
}

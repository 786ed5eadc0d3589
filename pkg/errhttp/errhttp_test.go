package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	salesdomain "github.com/ghuser/salesapi/services/sales/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrSaleNotFound", salesdomain.ErrSaleNotFound, http.StatusNotFound},
		{"ErrSaleNumberTaken", salesdomain.ErrSaleNumberTaken, http.StatusConflict},
		{"ErrQuantityExceeded", salesdomain.ErrQuantityExceeded, http.StatusUnprocessableEntity},
		{"wrapped ErrSaleNotFound", fmt.Errorf("get sale: %w", salesdomain.ErrSaleNotFound), http.StatusNotFound},
		{"wrapped ErrQuantityExceeded", fmt.Errorf("item %q: %w", "Beer", salesdomain.ErrQuantityExceeded), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_ValidationErrors(t *testing.T) {
	verrs := salesdomain.ValidationErrors{
		{Field: "sale_number", Message: "must be between 3 and 20 characters"},
		{Field: "items[0].quantity", Message: "must be greater than zero"},
	}

	w := httptest.NewRecorder()
	WriteError(w, verrs)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body struct {
		Error  string                  `json:"error"`
		Fields []salesdomain.FieldError `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if len(body.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(body.Fields))
	}
	if body.Fields[0].Field != "sale_number" {
		t.Errorf("unexpected first field: %q", body.Fields[0].Field)
	}
}

func TestWriteError_WrappedValidationErrors(t *testing.T) {
	verrs := salesdomain.ValidationErrors{{Field: "customer_id", Message: "is required"}}
	wrapped := fmt.Errorf("create sale: %w", verrs)

	w := httptest.NewRecorder()
	WriteError(w, wrapped)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrapped validation errors, got %d", w.Code)
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, salesdomain.ErrSaleNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, salesdomain.ErrSaleNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paothinnapat/sales-tracker/internal/domain"
)

func testSubmission() *domain.SaleSubmission {
	return &domain.SaleSubmission{
		Date:  "2024-01-01",
		Store: "410",
		Items: []domain.LineItem{
			{Product: "Shirt", Price: 180, Quantity: 2, Subtotal: 360},
		},
		Total:        360,
		SubmissionID: "sub-1",
	}
}

func TestHTTPSubmitter_Success(t *testing.T) {
	var gotPath string
	var gotBody domain.SaleSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Sales recorded successfully",
			"count":   1,
		})
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL+"/", nil)
	count, err := s.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if gotPath != "/api/submit-sale" {
		t.Errorf("path = %s, want /api/submit-sale", gotPath)
	}
	if gotBody.Total != 360 || len(gotBody.Items) != 1 || gotBody.SubmissionID != "sub-1" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestHTTPSubmitter_ServerErrorSurfacesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Failed to record sales",
			"details": "append rows: quota exceeded",
		})
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, nil)
	_, err := s.Submit(context.Background(), testSubmission())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Failed to record sales") ||
		!strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want error and details from response", err)
	}
}

func TestHTTPSubmitter_ValidationErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "No items to record."})
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, nil)
	_, err := s.Submit(context.Background(), testSubmission())
	if err == nil || !strings.Contains(err.Error(), "No items to record.") {
		t.Errorf("err = %v, want the server's error message", err)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/config"
	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/metrics"
	"github.com/paothinnapat/sales-tracker/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSheet struct {
	ensureErr error
	appendErr error
	appended  [][]interface{}
}

func (s *stubSheet) EnsureHeader(ctx context.Context, header []string) error {
	return s.ensureErr
}

func (s *stubSheet) AppendRows(ctx context.Context, rows [][]interface{}) (int, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	s.appended = append(s.appended, rows...)
	return len(rows), nil
}

func newTestRouter(t *testing.T, sheet *stubSheet) *gin.Engine {
	t.Helper()
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>sales form</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('form')"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Environment: "test", StaticDir: staticDir}
	ledger := service.NewLedgerService(func() service.LedgerSheet { return sheet }, zap.NewNop())
	return NewRouter(cfg, domain.DefaultCatalog(), ledger, metrics.NewRegistry(), zap.NewNop())
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitSale_Success(t *testing.T) {
	sheet := &stubSheet{}
	router := newTestRouter(t, sheet)

	body := `{"date":"2024-01-01","store":"410","items":[{"product":"Shirt","price":180,"quantity":2,"subtotal":360}],"total":360}`
	w := doJSON(router, http.MethodPost, "/api/submit-sale", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Sales recorded successfully" || resp.Count != 1 {
		t.Errorf("resp = %+v", resp)
	}
	if len(sheet.appended) != 1 {
		t.Fatalf("appended rows = %v", sheet.appended)
	}
	if sheet.appended[0][2] != "Shirt" {
		t.Errorf("row = %v", sheet.appended[0])
	}
}

func TestSubmitSale_EmptyItemsIs400(t *testing.T) {
	for _, body := range []string{
		`{"date":"2024-01-01","store":"410","items":[],"total":0}`,
		`{"date":"2024-01-01","store":"410","total":0}`,
	} {
		sheet := &stubSheet{}
		router := newTestRouter(t, sheet)
		w := doJSON(router, http.MethodPost, "/api/submit-sale", body)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d", body, w.Code)
		}
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != "No items to record." {
			t.Errorf("error = %q", resp["error"])
		}
		if len(sheet.appended) != 0 {
			t.Error("rows appended for an empty submission")
		}
	}
}

func TestSubmitSale_MalformedBodyIs400(t *testing.T) {
	router := newTestRouter(t, &stubSheet{})
	w := doJSON(router, http.MethodPost, "/api/submit-sale", `{"items": "nope"`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSubmitSale_UpstreamFailureIs500WithDetails(t *testing.T) {
	sheet := &stubSheet{appendErr: errors.New("quota exceeded")}
	router := newTestRouter(t, sheet)

	body := `{"date":"2024-01-01","store":"410","items":[{"product":"Shirt","price":180,"quantity":2,"subtotal":360}],"total":360}`
	w := doJSON(router, http.MethodPost, "/api/submit-sale", body)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Failed to record sales" {
		t.Errorf("error = %q", resp["error"])
	}
	if !strings.Contains(resp["details"], "quota exceeded") {
		t.Errorf("details = %q, want the upstream message", resp["details"])
	}
}

func TestGetCatalog(t *testing.T) {
	router := newTestRouter(t, &stubSheet{})
	w := doJSON(router, http.MethodGet, "/api/catalog", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp service.CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Products) != 9 {
		t.Errorf("products = %d, want 9", len(resp.Products))
	}
	if resp.Products[0].Name != "Shirt" {
		t.Errorf("first product = %s", resp.Products[0].Name)
	}
	if len(resp.Stores) != 4 {
		t.Errorf("stores = %v", resp.Stores)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubSheet{})
	w := doJSON(router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(t, &stubSheet{})

	body := `{"date":"2024-01-01","store":"410","items":[{"product":"Shirt","price":180,"quantity":1,"subtotal":180}],"total":180}`
	doJSON(router, http.MethodPost, "/api/submit-sale", body)

	w := doJSON(router, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "sales_submissions_recorded_total 1") {
		t.Errorf("metrics body missing recorded counter:\n%s", w.Body.String())
	}
}

func TestStaticAndSPAFallback(t *testing.T) {
	router := newTestRouter(t, &stubSheet{})

	// Existing asset is served as-is
	w := doJSON(router, http.MethodGet, "/app.js", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "console.log") {
		t.Fatalf("asset: status = %d, body = %s", w.Code, w.Body.String())
	}

	// Unknown client route falls back to the app entry document
	w = doJSON(router, http.MethodGet, "/some/client/route", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "sales form") {
		t.Fatalf("fallback: status = %d, body = %s", w.Code, w.Body.String())
	}

	// Unknown API routes do not fall back
	w = doJSON(router, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("api 404: status = %d", w.Code)
	}

	// Non-GET methods do not fall back either
	w = doJSON(router, http.MethodDelete, "/some/client/route", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete 404: status = %d", w.Code)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aromateca/internal/config"
	"aromateca/internal/store"
	"aromateca/models"
)

var testDBCounter atomic.Int64

// The handlers share package-level dependencies, so these tests run
// sequentially and reconfigure before each scenario.
func setupHandlers(t *testing.T) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers-test-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	st, err := store.OpenGorm(db)
	if err != nil {
		t.Fatalf("wrap store: %v", err)
	}
	Configure(scs.New(), st, config.AuthConfig{})
	return st
}

func testRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", Health)
	r.Get("/api/oils", ListOils)
	r.Get("/api/oils/export", ExportOils)
	r.Get("/api/oils/{id}", GetOil)
	r.Post("/api/oils", CreateOil)
	r.Put("/api/oils/{id}", UpdateOil)
	r.Delete("/api/oils/{id}", DeleteOil)
	r.Post("/api/oils/import", ImportOils)
	r.Get("/api/recipes", ListRecipes)
	r.Post("/api/blend", ComputeBlend)
	return r
}

func seedOils(t *testing.T, st *store.Store) {
	t.Helper()

	oils := []models.Oil{
		{ID: "lavanda", NamePT: "Lavanda", NameLatin: "Lavandula angustifolia", ExpectedEffects: []string{"Relaxamento"}},
		{ID: "alecrim", NamePT: "Alecrim", NameLatin: "Rosmarinus officinalis", ExpectedEffects: []string{"Foco"}},
	}
	if err := st.ReplaceOils(context.Background(), oils); err != nil {
		t.Fatalf("seed oils: %v", err)
	}
}

func TestHealthReportsCounts(t *testing.T) {
	st := setupHandlers(t)
	seedOils(t, st)

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
		Oils   int64  `json:"oils"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Oils != 2 {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}

func TestListOilsAppliesFilters(t *testing.T) {
	st := setupHandlers(t)
	seedOils(t, st)

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oils?q=lavandula", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Items   []models.Oil `json:"items"`
		Total   int          `json:"total"`
		Summary string       `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].ID != "lavanda" {
		t.Fatalf("unexpected filter result: %+v", resp)
	}
	if !strings.Contains(resp.Summary, "lavandula") {
		t.Fatalf("expected query in summary, got %q", resp.Summary)
	}
}

func TestOilCRUD(t *testing.T) {
	setupHandlers(t)
	router := testRouter()

	// Create without an id: one is generated.
	body := strings.NewReader(`{"nome_pt":"Gerânio"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/oils", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created models.Oil
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created oil: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	// Update.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/oils/"+created.ID,
		strings.NewReader(`{"nome_pt":"Gerânio do Egito"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// Read back.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oils/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var loaded models.Oil
	if err := json.Unmarshal(rec.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("decode oil: %v", err)
	}
	if loaded.NamePT != "Gerânio do Egito" {
		t.Fatalf("name = %s, want updated name", loaded.NamePT)
	}

	// Delete, then 404.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/oils/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oils/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateOilRejectsDuplicateID(t *testing.T) {
	st := setupHandlers(t)
	seedOils(t, st)

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/oils",
		strings.NewReader(`{"id":"lavanda","nome_pt":"Outra lavanda"}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestImportOilsMergeMode(t *testing.T) {
	st := setupHandlers(t)
	seedOils(t, st)

	doc := `[{"id":"lavanda","nome_pt":"Lavanda fina"},{"id":"copaiba","nome_pt":"Copaíba"}]`
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/oils/import", strings.NewReader(doc)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		Mode    string `json:"mode"`
		Added   int    `json:"added"`
		Updated int    `json:"updated"`
		Kept    int    `json:"kept"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Mode != "merge" || report.Added != 1 || report.Updated != 1 || report.Kept != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestImportOilsRejectsDuplicates(t *testing.T) {
	setupHandlers(t)

	doc := `[{"id":"a","nome_pt":"Um"},{"id":"a","nome_pt":"Dois"}]`
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/oils/import", strings.NewReader(doc)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestExportOilsCSV(t *testing.T) {
	st := setupHandlers(t)
	seedOils(t, st)

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oils/export?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %s, want text/csv", ct)
	}
	if !strings.Contains(rec.Body.String(), "Lavanda") {
		t.Fatal("expected csv body to contain the oils")
	}
}

func TestComputeBlendEndpoint(t *testing.T) {
	setupHandlers(t)

	body := `{"carrier_ml":100,"audience":"adults","oils":[{"id":"lavanda","note":"middle"}]}`
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/blend", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		TotalML string `json:"total_ml"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalML != "5.00" {
		t.Fatalf("total ml = %s, want 5.00", resp.TotalML)
	}
}

func TestComputeBlendRejectsExcessiveDilution(t *testing.T) {
	setupHandlers(t)

	body := `{"carrier_ml":100,"audience":"elderly","dilution_percent":3,"oils":[{"id":"x","note":"top"}]}`
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/blend", strings.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "1.25%") {
		t.Fatalf("expected the audience limit in the message, got %s", rec.Body.String())
	}
}

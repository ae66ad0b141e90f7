package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/google/go-cmp/cmp"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
)

type fakeService struct {
	catalog    *catalog.Catalog
	refreshErr error
	refreshes  int
}

func (f *fakeService) Catalog() *catalog.Catalog {
	return f.catalog
}

func (f *fakeService) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	f.refreshes++
	return f.catalog, f.refreshErr
}

func newFakeService() *fakeService {
	c := catalog.Empty()
	c.Archetypes = []catalog.Archetype{
		{LiferayVersion: "70", JSFVersion: "2.2", Suite: "alloy", Version: "3.0.0"},
		{LiferayVersion: "70", JSFVersion: "2.2", Suite: "icefaces", Version: "5.0.0"},
		{LiferayVersion: "62", JSFVersion: "1.2", Suite: "icefaces", Version: "3.0.0"},
	}
	c.Suites = []catalog.Suite{catalog.NewSuite("alloy"), catalog.NewSuite("icefaces")}
	c.LiferayVersions = []string{"70", "62"}
	c.JSFVersions = []string{"2.2", "1.2"}
	return &fakeService{catalog: c}
}

func createTestAPI(svc CatalogService) http.Handler {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	Register(api, svc)
	return mux
}

func get(t *testing.T, h http.Handler, method, path string, v interface{}) int {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if v != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
			t.Fatalf("Failed to decode %s: %v\n%s", path, err, w.Body.String())
		}
	}
	return w.Code
}

func TestListArchetypes(t *testing.T) {
	h := createTestAPI(newFakeService())

	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"all", "/api/archetypes", []string{"3.0.0", "5.0.0", "3.0.0"}},
		{"by suite", "/api/archetypes?suite=icefaces", []string{"5.0.0", "3.0.0"}},
		{"by liferay", "/api/archetypes?liferay=62", []string{"3.0.0"}},
		{"by liferay and jsf", "/api/archetypes?liferay=70&jsf=2.2&suite=alloy", []string{"3.0.0"}},
		{"no match", "/api/archetypes?jsf=2.3", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var archetypes []catalog.Archetype
			if code := get(t, h, http.MethodGet, tt.path, &archetypes); code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", code)
			}

			versions := []string{}
			for _, a := range archetypes {
				versions = append(versions, a.Version)
			}
			if diff := cmp.Diff(tt.expected, versions); diff != "" {
				t.Errorf("Versions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListBuildsAndSuites(t *testing.T) {
	h := createTestAPI(newFakeService())

	var builds []catalog.Build
	if code := get(t, h, http.MethodGet, "/api/builds", &builds); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if diff := cmp.Diff(catalog.DefaultBuilds(), builds); diff != "" {
		t.Errorf("Builds mismatch (-want +got):\n%s", diff)
	}

	var suites []catalog.Suite
	if code := get(t, h, http.MethodGet, "/api/suites", &suites); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if len(suites) != 2 || suites[1].Title == nil || *suites[1].Title != "ICEfaces" {
		t.Errorf("Unexpected suites %v", suites)
	}
}

func TestListVersions(t *testing.T) {
	h := createTestAPI(newFakeService())

	var versions struct {
		Liferay  []string `json:"liferay"`
		JSF      []string `json:"jsf"`
		Snapshot bool     `json:"snapshot"`
	}
	if code := get(t, h, http.MethodGet, "/api/versions", &versions); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}

	if diff := cmp.Diff([]string{"70", "62"}, versions.Liferay); diff != "" {
		t.Errorf("Liferay versions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2.2", "1.2"}, versions.JSF); diff != "" {
		t.Errorf("JSF versions mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshCatalog(t *testing.T) {
	svc := newFakeService()
	h := createTestAPI(svc)

	var out struct {
		Archetypes int    `json:"archetypes"`
		Suites     int    `json:"suites"`
		Warning    string `json:"warning"`
	}
	if code := get(t, h, http.MethodPost, "/api/refresh", &out); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if out.Archetypes != 3 || out.Suites != 2 || out.Warning != "" {
		t.Errorf("Unexpected refresh result %+v", out)
	}

	svc.refreshErr = errors.New("listing unavailable")
	if code := get(t, h, http.MethodPost, "/api/refresh", &out); code != http.StatusOK {
		t.Fatalf("Expected 200 for a partial refresh, got %d", code)
	}
	if out.Warning == "" {
		t.Error("Expected a warning for a partial refresh")
	}
	if svc.refreshes != 2 {
		t.Errorf("Expected two refreshes, got %d", svc.refreshes)
	}
}

func TestHealthCheck(t *testing.T) {
	svc := newFakeService()
	h := createTestAPI(svc)

	var health struct {
		Status     string `json:"status"`
		Archetypes int    `json:"archetypes"`
	}
	if code := get(t, h, http.MethodGet, "/api/health", &health); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if health.Status != "initializing" {
		t.Errorf("Expected initializing before the first build, got %s", health.Status)
	}

	svc.catalog.BuiltAt = time.Now()
	get(t, h, http.MethodGet, "/api/health", &health)
	if health.Status != "ok" || health.Archetypes != 3 {
		t.Errorf("Unexpected health %+v", health)
	}
}

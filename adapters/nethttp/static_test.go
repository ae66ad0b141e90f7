package nethttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liferay-faces/archetype-portal/internal/testutil"
	"github.com/liferay-faces/archetype-portal/internal/web"
)

func TestStaticHandler_RealFileServing(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/", StaticHandler(web.Assets, web.DefaultStaticConfig()))

	for _, tt := range testutil.GetBasicFileServingTests() {
		t.Run(tt.Name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.Path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.ValidateStaticResponse(t, tt, w.Code,
				w.Header().Get("Content-Type"),
				w.Header().Get("Cache-Control"),
				w.Body.String())
		})
	}
}

func TestStaticHandler_NotFound(t *testing.T) {
	handler := StaticHandler(web.Assets, web.DefaultStaticConfig())

	for _, path := range testutil.GetNotFoundPaths() {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for %s, got %d", path, w.Code)
		}
	}
}

func TestStaticHandler_APIRouting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/", StaticHandler(web.Assets, web.DefaultStaticConfig()))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Body.String() != `{"status":"ok"}` {
		t.Errorf("Expected API route to win over static handler, got '%s'", w.Body.String())
	}
}

func TestStaticHandler_Revalidate(t *testing.T) {
	handler := StaticHandler(web.Assets, web.DefaultStaticConfig())

	testutil.ValidateRevalidation(t, func(ifNoneMatch string) (int, string, string) {
		req := httptest.NewRequest("GET", "/styles.css", nil)
		if ifNoneMatch != "" {
			req.Header.Set("If-None-Match", ifNoneMatch)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code, w.Header().Get("ETag"), w.Body.String()
	})
}

func TestStaticHandler_Head(t *testing.T) {
	handler := StaticHandler(web.Assets, web.DefaultStaticConfig())

	req := httptest.NewRequest("HEAD", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected no body for HEAD, got %d bytes", w.Body.Len())
	}
}

package testutil

import (
	"strings"
	"testing"
)

// StaticTestCase represents a test case for static file serving
type StaticTestCase struct {
	Name                string
	Path                string
	ExpectedStatus      int
	ExpectedBodyContent string
	ExpectedContentType string
	ExpectCacheControl  bool
}

// GetBasicFileServingTests returns the portal page cases every router must serve
func GetBasicFileServingTests() []StaticTestCase {
	return []StaticTestCase{
		{
			Name:                "serve index.html",
			Path:                "/index.html",
			ExpectedStatus:      200,
			ExpectedBodyContent: "Liferay Faces Archetypes",
			ExpectedContentType: "text/html",
			ExpectCacheControl:  true,
		},
		{
			Name:                "serve root path as index.html",
			Path:                "/",
			ExpectedStatus:      200,
			ExpectedBodyContent: "Liferay Faces Archetypes",
			ExpectedContentType: "text/html",
			ExpectCacheControl:  true,
		},
		{
			Name:                "serve JavaScript file",
			Path:                "/app.js",
			ExpectedStatus:      200,
			ExpectedBodyContent: "/api/archetypes",
			ExpectedContentType: "application/javascript",
			ExpectCacheControl:  true,
		},
		{
			Name:                "serve CSS file",
			Path:                "/styles.css",
			ExpectedStatus:      200,
			ExpectedBodyContent: "font-family: Arial",
			ExpectedContentType: "text/css",
			ExpectCacheControl:  true,
		},
	}
}

// GetNotFoundPaths returns paths the static handler must refuse
func GetNotFoundPaths() []string {
	return []string{"/missing.js", "/api/unknown", "/nested/page"}
}

// ValidateStaticResponse validates common aspects of static file responses
func ValidateStaticResponse(t *testing.T, testCase StaticTestCase, statusCode int, contentType, cacheControl, body string) {
	t.Helper()

	if statusCode != testCase.ExpectedStatus {
		t.Errorf("Expected status %d, got %d", testCase.ExpectedStatus, statusCode)
	}

	if !strings.Contains(contentType, testCase.ExpectedContentType) {
		t.Errorf("Expected Content-Type to contain '%s', got '%s'", testCase.ExpectedContentType, contentType)
	}

	if testCase.ExpectCacheControl && cacheControl == "" {
		t.Errorf("Expected Cache-Control header to be set, got empty")
	}

	if !strings.Contains(body, testCase.ExpectedBodyContent) {
		t.Errorf("Expected body to contain '%s', got '%s'", testCase.ExpectedBodyContent, body)
	}
}

// ValidateRevalidation fetches the portal page twice through serve, the
// second time with the entity tag of the first, and expects 304 without a body
func ValidateRevalidation(t *testing.T, serve func(ifNoneMatch string) (status int, etag, body string)) {
	t.Helper()

	status, etag, _ := serve("")
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if etag == "" {
		t.Fatal("Expected an ETag header")
	}

	status, again, body := serve(etag)
	if status != 304 {
		t.Errorf("Expected status 304 for a matching If-None-Match, got %d", status)
	}
	if again != etag {
		t.Errorf("Expected ETag %s on 304, got %s", etag, again)
	}
	if body != "" {
		t.Errorf("Expected no body on 304, got %q", body)
	}

	if status, _, _ := serve(`"stale"`); status != 200 {
		t.Errorf("Expected status 200 for a stale If-None-Match, got %d", status)
	}
}

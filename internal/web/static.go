package web

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"strings"
)

// Assets holds the portal front page
//
//go:embed assets/*
var Assets embed.FS

// StaticConfig configures static file serving behavior
type StaticConfig struct {
	// AssetsDir is the subdirectory within the FS holding the files
	AssetsDir string
	// APIPrefix excludes paths starting with this prefix from static serving
	APIPrefix string
}

// DefaultStaticConfig serves the embedded portal page
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		AssetsDir: "assets",
		APIPrefix: "/api/",
	}
}

// StaticResponse is the router-independent result of a static lookup
type StaticResponse struct {
	StatusCode   int
	ContentType  string
	CacheControl string
	ETag         string
	Body         []byte
	NotFound     bool
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ServeStaticFile resolves urlPath against assets
func ServeStaticFile(assets fs.FS, config StaticConfig, urlPath string) StaticResponse {
	if config.APIPrefix == "" {
		config.APIPrefix = "/api/"
	}

	if strings.HasPrefix(urlPath, config.APIPrefix) {
		return StaticResponse{NotFound: true}
	}

	path := strings.TrimPrefix(urlPath, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index.html"
	}

	if config.AssetsDir != "" {
		sub, err := fs.Sub(assets, config.AssetsDir)
		if err != nil {
			return StaticResponse{NotFound: true}
		}
		assets = sub
	}

	body, err := fs.ReadFile(assets, path)
	if err != nil {
		return StaticResponse{NotFound: true}
	}

	contentType, ok := contentTypes[filepath.Ext(path)]
	if !ok {
		contentType = "application/octet-stream"
	}

	return StaticResponse{
		StatusCode:   200,
		ContentType:  contentType,
		CacheControl: cacheControl(path),
		ETag:         etag(body),
		Body:         body,
	}
}

// Revalidate turns a found response into 304 Not Modified when ifNoneMatch
// names its entity tag
func Revalidate(response StaticResponse, ifNoneMatch string) StaticResponse {
	if response.NotFound || response.ETag == "" || ifNoneMatch == "" {
		return response
	}

	for _, tag := range strings.Split(ifNoneMatch, ",") {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "W/")
		if tag == response.ETag || tag == "*" {
			response.StatusCode = 304
			response.Body = nil
			return response
		}
	}
	return response
}

func etag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// cacheControl keeps the page short-lived and the scripts longer
func cacheControl(path string) string {
	switch filepath.Ext(path) {
	case ".css", ".js":
		return "public, max-age=3600"
	default:
		return "public, max-age=300"
	}
}

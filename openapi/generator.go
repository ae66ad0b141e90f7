package openapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/liferay-faces/archetype-portal/internal/api"
	"github.com/liferay-faces/archetype-portal/internal/catalog"
	"github.com/liferay-faces/archetype-portal/internal/server"
)

// emptyService lets the API be registered without scraping anything
type emptyService struct{}

func (emptyService) Catalog() *catalog.Catalog {
	return catalog.Empty()
}

func (emptyService) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Empty(), nil
}

// PortalAPI returns the portal API description without a running server
func PortalAPI(version string) huma.API {
	humaAPI := humago.New(http.NewServeMux(), server.APIConfig(version))
	api.Register(humaAPI, emptyService{})
	return humaAPI
}

// GenerateSpecToFile writes the OpenAPI document of api to outputPath. A
// .yaml or .yml extension selects YAML, anything else JSON.
func GenerateSpecToFile(api huma.API, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var (
		spec []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".yaml", ".yml":
		spec, err = GenerateSpecYAML(api)
	default:
		spec, err = GenerateSpec(api)
	}
	if err != nil {
		return fmt.Errorf("failed to generate OpenAPI document: %w", err)
	}

	if err := os.WriteFile(outputPath, spec, 0644); err != nil {
		return fmt.Errorf("failed to save OpenAPI spec to %s: %w", outputPath, err)
	}

	return nil
}

// GenerateSpec returns the OpenAPI document as JSON
func GenerateSpec(api huma.API) ([]byte, error) {
	return api.OpenAPI().MarshalJSON()
}

// GenerateSpecYAML returns the OpenAPI document as YAML
func GenerateSpecYAML(api huma.API) ([]byte, error) {
	return api.OpenAPI().YAML()
}

// GetRouteCount returns the number of operations in the API
func GetRouteCount(api huma.API) int {
	spec := api.OpenAPI()
	if spec == nil || spec.Paths == nil {
		return 0
	}

	count := 0
	for _, item := range spec.Paths {
		if item == nil {
			continue
		}
		for _, op := range []*huma.Operation{item.Get, item.Post, item.Put, item.Delete, item.Patch, item.Head, item.Options} {
			if op != nil {
				count++
			}
		}
	}
	return count
}

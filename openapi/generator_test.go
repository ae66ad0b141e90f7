package openapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPortalAPI(t *testing.T) {
	api := PortalAPI("1.2.3")

	if got := GetRouteCount(api); got != 6 {
		t.Errorf("Expected 6 portal operations, got %d", got)
	}

	spec, err := GenerateSpec(api)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	specStr := string(spec)
	for _, want := range []string{
		`"openapi"`,
		"Liferay Faces Archetype Portal",
		"1.2.3",
		"list-archetypes",
		"refresh-catalog",
		"health-check",
		"/api/versions",
	} {
		if !strings.Contains(specStr, want) {
			t.Errorf("Expected spec to contain '%s'", want)
		}
	}
}

func TestGenerateSpecYAML(t *testing.T) {
	spec, err := GenerateSpecYAML(PortalAPI("dev"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(string(spec), "openapi:") {
		t.Error("Expected YAML spec to contain 'openapi:' field")
	}
}

func TestGenerateSpecToFile(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		marker string
	}{
		{"json", "spec.json", `"openapi"`},
		{"yaml", "spec.yaml", "openapi:"},
		{"nested directory", filepath.Join("nested", "dir", "spec.json"), `"openapi"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), tt.file)

			if err := GenerateSpecToFile(PortalAPI("dev"), outputPath); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			content, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			if !strings.Contains(string(content), tt.marker) {
				t.Errorf("Expected file content to contain '%s'", tt.marker)
			}
		})
	}
}

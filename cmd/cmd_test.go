package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
	"github.com/liferay-faces/archetype-portal/internal/config"
)

func sampleArchetype() catalog.Archetype {
	return catalog.Archetype{
		LiferayVersion:     "70",
		JSFVersion:         "2.2",
		Suite:              "icefaces",
		Version:            "5.0.0",
		MavenDependencies:  "<dependencies>\n</dependencies>\n",
		GradleDependencies: "dependencies {\n}\n",
		GenerateCommand:    catalog.GenerateCommand("icefaces", "5.0.0"),
	}
}

func TestRenderArchetype(t *testing.T) {
	tests := []struct {
		build   string
		want    string
		notWant string
	}{
		{"maven", "<dependencies>", "dependencies {"},
		{"gradle", "dependencies {", "<dependencies>"},
	}

	for _, tt := range tests {
		t.Run(tt.build, func(t *testing.T) {
			var buf bytes.Buffer
			renderArchetype(&buf, sampleArchetype(), tt.build)
			out := buf.String()

			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected output to contain '%s', got:\n%s", tt.want, out)
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("Expected output not to contain '%s', got:\n%s", tt.notWant, out)
			}
			if strings.Contains(out, "<br />") {
				t.Errorf("Expected line breaks in the generate command, got:\n%s", out)
			}
			if !strings.Contains(out, "-DarchetypeVersion=5.0.0 \\\n") {
				t.Errorf("Expected generate command, got:\n%s", out)
			}
		})
	}
}

func TestPrintCatalog(t *testing.T) {
	c := catalog.Empty()
	c.Archetypes = []catalog.Archetype{sampleArchetype(), {Suite: "newfaces", Version: "1.0.0"}}
	c.Suites = []catalog.Suite{catalog.NewSuite("icefaces"), catalog.NewSuite("newfaces")}
	c.LiferayVersions = []string{"70"}
	c.JSFVersions = []string{"2.2"}

	var buf bytes.Buffer
	printCatalog(&buf, c)
	out := buf.String()

	for _, want := range []string{"(release)", "Liferay versions: 70", "Builds: maven, gradle", "ICEfaces", "newfaces", "1.0.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain '%s', got:\n%s", want, out)
		}
	}
}

func TestPrintEmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	printCatalog(&buf, catalog.Empty())

	if !strings.Contains(buf.String(), "No archetypes found") {
		t.Errorf("Expected empty notice, got:\n%s", buf.String())
	}
}

func TestValidBuild(t *testing.T) {
	builds := catalog.DefaultBuilds()
	if !validBuild(builds, "gradle") {
		t.Error("Expected gradle to be valid")
	}
	if validBuild(builds, "ant") {
		t.Error("Expected ant to be invalid")
	}
}

func TestArchetypeLabel(t *testing.T) {
	if got := archetypeLabel(catalog.Archetype{Version: "4.0.0"}); got != "4.0.0 (Liferay -, JSF -)" {
		t.Errorf("Unexpected label '%s'", got)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")

	initCmd := ConfigCmd()
	initCmd.SetArgs([]string{"init", path, "--snapshot"})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("Expected init to succeed, got %v", err)
	}

	cfg, err := config.NewConfigManager(config.ConfigLoadOptions{
		Path:              path,
		ValidateStructure: true,
		ApplyDefaults:     true,
		Quiet:             true,
	}).LoadConfig()
	if err != nil {
		t.Fatalf("Expected generated config to load, got %v", err)
	}
	if cfg.Parameters[config.SnapshotParam] != "true" {
		t.Errorf("Expected snapshot parameter, got %v", cfg.Parameters)
	}

	again := ConfigCmd()
	again.SetArgs([]string{"init", path})
	if err := again.Execute(); err == nil {
		t.Error("Expected init to refuse overwriting without --force")
	}

	validate := ConfigCmd()
	validate.SetArgs([]string{"validate", path})
	if err := validate.Execute(); err != nil {
		t.Errorf("Expected generated config to validate, got %v", err)
	}
}

func TestReloadConfigAppliesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("PORTAL_SNAPSHOT", "true")

	cfg, err := reloadConfig(path)
	if err != nil {
		t.Fatalf("Expected reload to succeed, got %v", err)
	}
	if cfg.Parameters[config.SnapshotParam] != "true" {
		t.Errorf("Expected PORTAL_SNAPSHOT to apply on reload, got %v", cfg.Parameters)
	}
}

func TestConfigValidateRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := os.WriteFile(path, []byte("router: chi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	validate := ConfigCmd()
	validate.SetArgs([]string{"validate", path})
	validate.SilenceUsage = true
	if err := validate.Execute(); err == nil {
		t.Error("Expected validation to fail for an unsupported router")
	}
}

func TestGetConfigPath(t *testing.T) {
	if got := getConfigPath(nil); got != defaultConfigPath {
		t.Errorf("Expected %s, got %s", defaultConfigPath, got)
	}
	if got := getConfigPath([]string{"other.yaml"}); got != "other.yaml" {
		t.Errorf("Expected other.yaml, got %s", got)
	}
}

func TestOpenAPICmdWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")

	cmd := OpenAPICmd("test")
	cmd.SetArgs([]string{"--output", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read spec: %v", err)
	}
	if !strings.Contains(string(data), "list-archetypes") {
		t.Error("Expected spec to describe the archetype listing")
	}
}

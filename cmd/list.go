package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liferay-faces/archetype-portal/internal/catalog"
)

func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Build the catalog once and list the archetypes",
		RunE:  runList,
	}

	addConfigFlag(cmd)
	cmd.Flags().Bool("json", false, "Print the full catalog as JSON")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := newService(cfg, newLogger(cfg.LogLevel))
	if err != nil {
		return err
	}

	svc.Init(context.Background(), cfg.Parameters)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(svc.Catalog())
	}

	printCatalog(os.Stdout, svc.Catalog())
	return nil
}

func printCatalog(w io.Writer, c *catalog.Catalog) {
	mode := "release"
	if c.Snapshot {
		mode = "snapshot"
	}
	fmt.Fprintf(w, "📦 Archetype catalog (%s)\n", mode)
	if c.Context != "" {
		fmt.Fprintf(w, "   Source: %s\n", c.Context)
	}
	fmt.Fprintf(w, "   Liferay versions: %s\n", strings.Join(c.LiferayVersions, ", "))
	fmt.Fprintf(w, "   JSF versions: %s\n", strings.Join(c.JSFVersions, ", "))

	builds := make([]string, 0, len(c.Builds))
	for _, b := range c.Builds {
		builds = append(builds, b.Label)
	}
	fmt.Fprintf(w, "   Builds: %s\n", strings.Join(builds, ", "))

	if len(c.Archetypes) == 0 {
		fmt.Fprintln(w, "\n⚠️  No archetypes found")
		return
	}

	fmt.Fprintf(w, "\n%-24s %-16s %-8s %-8s\n", "SUITE", "VERSION", "LIFERAY", "JSF")
	for _, s := range c.Suites {
		for _, a := range c.Matching(catalog.Filter{Suite: s.Key}) {
			fmt.Fprintf(w, "%-24s %-16s %-8s %-8s\n", suiteLabel(s), a.Version, dash(a.LiferayVersion), dash(a.JSFVersion))
		}
	}
}

func suiteLabel(s catalog.Suite) string {
	if s.Title != nil {
		return *s.Title
	}
	return s.Key
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

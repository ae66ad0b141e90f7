package server

import (
	"fmt"
	"io"
	"strings"
)

// BannerOptions configures the startup banner
type BannerOptions struct {
	Name       string
	Version    string
	Host       string
	Port       int
	Router     string
	Snapshot   bool
	Archetypes int
	Watching   string
}

// Banner prints the service information shown when the server starts
func Banner(w io.Writer, opts BannerOptions) {
	rule := strings.Repeat("═", 60)
	fmt.Fprintln(w, rule)

	if opts.Name != "" {
		fmt.Fprintf(w, "🚀 %s", opts.Name)
		if opts.Version != "" {
			fmt.Fprintf(w, " v%s", opts.Version)
		}
		fmt.Fprintln(w)
	}

	host := opts.Host
	if host == "" {
		host = "localhost"
	}
	if opts.Port > 0 {
		addr := fmt.Sprintf("%s:%d", host, opts.Port)
		fmt.Fprintf(w, "🌐 Portal running on \x1b[32mhttp://%s\x1b[0m (%s)\n", addr, opts.Router)
		fmt.Fprintf(w, "📚 API docs: http://%s%s\n", addr, DocsPath)
		fmt.Fprintf(w, "📋 OpenAPI spec: http://%s%s.json\n", addr, OpenAPIPath)
	}

	mode := "release"
	if opts.Snapshot {
		mode = "snapshot"
	}
	fmt.Fprintf(w, "📦 %d archetypes (%s)\n", opts.Archetypes, mode)

	if opts.Watching != "" {
		fmt.Fprintf(w, "👀 Watching %s for changes\n", opts.Watching)
	}

	fmt.Fprintln(w, rule)
}

package nethttp

import (
	"io/fs"
	"net/http"

	"github.com/liferay-faces/archetype-portal/internal/web"
)

// StaticHandler serves the portal page behind the huma mux
func StaticHandler(assets fs.FS, config web.StaticConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := web.Revalidate(
			web.ServeStaticFile(assets, config, r.URL.Path),
			r.Header.Get("If-None-Match"),
		)

		if response.NotFound {
			http.NotFound(w, r)
			return
		}

		h := w.Header()
		h.Set("Cache-Control", response.CacheControl)
		h.Set("ETag", response.ETag)
		if response.StatusCode == http.StatusNotModified {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		h.Set("Content-Type", response.ContentType)
		w.WriteHeader(response.StatusCode)
		if r.Method != http.MethodHead {
			w.Write(response.Body)
		}
	})
}

package echo

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/liferay-faces/archetype-portal/internal/web"
)

// StaticHandler serves the portal page as Echo's fallback route
func StaticHandler(assets fs.FS, config web.StaticConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := web.Revalidate(
			web.ServeStaticFile(assets, config, c.Request().URL.Path),
			c.Request().Header.Get("If-None-Match"),
		)

		if response.NotFound {
			return c.NoContent(http.StatusNotFound)
		}

		h := c.Response().Header()
		h.Set("Cache-Control", response.CacheControl)
		h.Set("ETag", response.ETag)
		if response.StatusCode == http.StatusNotModified {
			return c.NoContent(http.StatusNotModified)
		}
		return c.Blob(response.StatusCode, response.ContentType, response.Body)
	}
}

package gin

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liferay-faces/archetype-portal/internal/web"
)

// StaticHandler serves the portal page on Gin's NoRoute, answering
// conditional requests with 304
func StaticHandler(assets fs.FS, config web.StaticConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := web.Revalidate(
			web.ServeStaticFile(assets, config, c.Request.URL.Path),
			c.GetHeader("If-None-Match"),
		)

		if response.NotFound {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", response.CacheControl)
		c.Header("ETag", response.ETag)
		if response.StatusCode == http.StatusNotModified {
			c.Status(http.StatusNotModified)
			return
		}
		c.Data(response.StatusCode, response.ContentType, response.Body)
	}
}

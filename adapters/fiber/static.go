package fiber

import (
	"io/fs"

	"github.com/gofiber/fiber/v2"

	"github.com/liferay-faces/archetype-portal/internal/web"
)

// StaticHandler serves the portal page as Fiber's catch-all route
func StaticHandler(assets fs.FS, config web.StaticConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response := web.Revalidate(
			web.ServeStaticFile(assets, config, c.Path()),
			c.Get(fiber.HeaderIfNoneMatch),
		)

		if response.NotFound {
			return c.SendStatus(fiber.StatusNotFound)
		}

		c.Set(fiber.HeaderCacheControl, response.CacheControl)
		c.Set(fiber.HeaderETag, response.ETag)
		if response.StatusCode == fiber.StatusNotModified {
			return c.SendStatus(fiber.StatusNotModified)
		}

		c.Set(fiber.HeaderContentType, response.ContentType)
		return c.Status(response.StatusCode).Send(response.Body)
	}
}

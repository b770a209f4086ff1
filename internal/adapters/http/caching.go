package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control defaults on GET responses when the
// handler hasn't set one itself.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/api/search"):
			ttl = "public, max-age=300" // geocode results are stable

		case strings.HasPrefix(path, "/api/trips/"):
			ttl = "public, max-age=60"

		case path == "/api/trips":
			ttl = "no-cache" // the list changes on every write
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}
		return err
	}
}

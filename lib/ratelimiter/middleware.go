package ratelimiter

import (
	"strings"
	"time"

	"github.com/geocontent/backend/lib/settings"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// New throttles write requests per acting user, read from header, or per
// client IP when no user is given. Over the limit, rejected answers the
// request; the limiter sets Retry-After before calling it. Reads are never
// limited.
func New(limiting settings.CommitRateLimiting, header string, rejected fiber.Handler) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			if limiting.Disabled {
				return true
			}
			switch c.Method() {
			case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
				return true
			}
			return false
		},
		Max:        limiting.Points,
		Expiration: time.Duration(limiting.Duration) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if user := strings.TrimSpace(c.Get(header)); user != "" {
				return "user:" + user
			}
			return "ip:" + c.IP()
		},
		LimitReached:      rejected,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

package content

import (
	"strings"

	apiErrors "github.com/geocontent/backend/lib/api/errors"
	"github.com/geocontent/backend/lib/moderation"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const AuthorHeader = "X-Author-Id"

// Init mounts the revision and moderation routes of one content kind under
// router, e.g. /api/waypoint.
func Init[V any](router fiber.Router, moderator *moderation.Moderator[V], logger *zap.SugaredLogger) {
	h := &handlers[V]{moderator: moderator, repo: moderator.Repository(), logger: logger}
	kind := router.Group("/" + moderator.Repository().Kind())

	kind.Post("/chains", h.createChain)
	kind.Get("/chains/:chainId", h.getChain)
	kind.Delete("/chains/:chainId", h.deleteChain)
	kind.Post("/chains/:chainId/revisions", h.submit)
	kind.Get("/chains/:chainId/history", h.history)
	kind.Post("/chains/:chainId/promote/:nodeId", h.promote)
	kind.Post("/chains/:chainId/rewind/:nodeId", h.rewind)

	kind.Get("/diff/:fromId/:toId", h.diff)
	kind.Get("/visible", h.visible)
	kind.Get("/pending", h.pending)

	kind.Get("/revisions/:nodeId", h.getRevision)
	kind.Get("/revisions/:nodeId/next", h.next)
	kind.Post("/revisions/:nodeId/approve", h.moderate(moderator.Approve))
	kind.Post("/revisions/:nodeId/reject", h.moderate(moderator.Reject))
	kind.Post("/revisions/:nodeId/request-deletion", h.moderate(moderator.RequestDeletion))
	kind.Post("/revisions/:nodeId/decline-deletion", h.moderate(moderator.DeclineDeletion))
	kind.Post("/revisions/:nodeId/confirm-deletion", h.confirmDeletion)
}

// actingUser reads the caller's id. Authentication happens in front of
// this service.
func actingUser(c *fiber.Ctx) (string, bool) {
	user := strings.TrimSpace(c.Get(AuthorHeader))
	return user, user != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(apiErrors.UnauthorizedError)
}

package content

import (
	"context"
	"strconv"

	apiErrors "github.com/geocontent/backend/lib/api/errors"
	"github.com/geocontent/backend/lib/moderation"
	"github.com/geocontent/backend/lib/revision"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type handlers[V any] struct {
	moderator *moderation.Moderator[V]
	repo      *revision.Repository[V]
	logger    *zap.SugaredLogger
}

// CreateChainRequest opens a chain with its first revision.
type CreateChainRequest[V any] struct {
	Language string `json:"language" example:"en"`
	Value    V      `json:"value"`
}

type SubmitRequest[V any] struct {
	Value V `json:"value"`
}

type CreateChainResponse[V any] struct {
	Chain      revision.Chain           `json:"chain"`
	Submission moderation.Submission[V] `json:"submission"`
}

type ChainResponse[V any] struct {
	Chain   revision.Chain    `json:"chain"`
	Current *revision.Node[V] `json:"current,omitempty"`
}

type RevisionResponse[V any] struct {
	Node   revision.Node[V]  `json:"node"`
	Status moderation.Status `json:"status"`
}

type StatusResponse struct {
	NodeID string            `json:"nodeId"`
	Status moderation.Status `json:"status"`
}

// createChain godoc
// @Summary Create a chain
// @Description Opens a chain in a language and submits its first revision
// @Tags Content
// @Accept json
// @Produce json
// @Param kind path string true "Content kind" Enums(tag, waypoint, media, static)
// @Param X-Author-Id header string true "Acting user"
// @Param request body object true "Language and value"
// @Success 201 {object} object
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/chains [post]
func (h *handlers[V]) createChain(c *fiber.Ctx) error {
	authorID, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}
	var request CreateChainRequest[V]
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(apiErrors.InvalidRequestError)
	}
	if request.Language == "" {
		return c.Status(fiber.StatusBadRequest).JSON(apiErrors.NewMissingParamError("language"))
	}
	chain, submission, err := h.moderator.Create(c.UserContext(), request.Language, request.Value, authorID)
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CreateChainResponse[V]{Chain: chain, Submission: submission})
}

// getChain godoc
// @Summary Get a chain
// @Description Returns the chain pointers and its current revision
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Success 200 {object} object
// @Failure 404 {object} errors.Error
// @Router /api/{kind}/chains/{chainId} [get]
func (h *handlers[V]) getChain(c *fiber.Ctx) error {
	chain, err := h.repo.Chain(c.UserContext(), c.Params("chainId"))
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	current, err := h.repo.Current(c.UserContext(), chain.ID)
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(ChainResponse[V]{Chain: chain, Current: current})
}

// deleteChain godoc
// @Summary Delete a chain
// @Description Removes the chain with all of its revisions
// @Tags Content
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Param X-Author-Id header string true "Acting user"
// @Success 204
// @Failure 404 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/chains/{chainId} [delete]
func (h *handlers[V]) deleteChain(c *fiber.Ctx) error {
	user, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.repo.Delete(c.UserContext(), c.Params("chainId")); err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	h.logger.Infow("Chain deleted via API", "chainId", c.Params("chainId"), "user", user)
	return c.SendStatus(fiber.StatusNoContent)
}

// submit godoc
// @Summary Submit a revision
// @Description Appends a pending revision to the chain
// @Tags Content
// @Accept json
// @Produce json
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Param X-Author-Id header string true "Acting user"
// @Param request body object true "Value"
// @Success 201 {object} object
// @Failure 404 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/chains/{chainId}/revisions [post]
func (h *handlers[V]) submit(c *fiber.Ctx) error {
	authorID, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}
	var request SubmitRequest[V]
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(apiErrors.InvalidRequestError)
	}
	submission, err := h.moderator.Submit(c.UserContext(), c.Params("chainId"), request.Value, authorID)
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(submission)
}

// history godoc
// @Summary Chain history
// @Description Revisions from the newest back to the first
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Param limit query int false "Maximum number of revisions"
// @Success 200 {array} object
// @Failure 404 {object} errors.Error
// @Router /api/{kind}/chains/{chainId}/history [get]
func (h *handlers[V]) history(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(apiErrors.NewInvalidParamError("limit"))
		}
		limit = parsed
	}

	nodes := make([]revision.Node[V], 0)
	for node, err := range h.repo.History(c.UserContext(), c.Params("chainId")) {
		if err != nil {
			return apiErrors.Handle(c, h.logger, err)
		}
		nodes = append(nodes, node)
		if limit > 0 && len(nodes) == limit {
			break
		}
	}
	return c.JSON(nodes)
}

// promote godoc
// @Summary Promote a revision
// @Description Makes a revision reachable from last the current one
// @Tags Content
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Param nodeId path string true "Revision ID"
// @Param X-Author-Id header string true "Acting user"
// @Success 204
// @Failure 404 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/chains/{chainId}/promote/{nodeId} [post]
func (h *handlers[V]) promote(c *fiber.Ctx) error {
	if _, ok := actingUser(c); !ok {
		return unauthorized(c)
	}
	if err := h.repo.Promote(c.UserContext(), c.Params("chainId"), c.Params("nodeId")); err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// rewind godoc
// @Summary Rewind a chain
// @Description Moves current back to an older revision
// @Tags Content
// @Param kind path string true "Content kind"
// @Param chainId path string true "Chain ID"
// @Param nodeId path string true "Revision ID"
// @Param X-Author-Id header string true "Acting user"
// @Success 204
// @Failure 404 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/chains/{chainId}/rewind/{nodeId} [post]
func (h *handlers[V]) rewind(c *fiber.Ctx) error {
	if _, ok := actingUser(c); !ok {
		return unauthorized(c)
	}
	if err := h.repo.Rewind(c.UserContext(), c.Params("chainId"), c.Params("nodeId")); err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// diff godoc
// @Summary Diff two revisions
// @Description Token diff of text fields and set diff of list fields
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param fromId path string true "Older revision ID"
// @Param toId path string true "Newer revision ID"
// @Success 200 {object} diff.Result
// @Failure 404 {object} errors.Error
// @Router /api/{kind}/diff/{fromId}/{toId} [get]
func (h *handlers[V]) diff(c *fiber.Ctx) error {
	result, err := h.repo.Diff(c.UserContext(), c.Params("fromId"), c.Params("toId"))
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(result)
}

// visible godoc
// @Summary Published content
// @Description Chains whose current revision is verified, in active languages
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param language query string false "Language code"
// @Success 200 {array} object
// @Router /api/{kind}/visible [get]
func (h *handlers[V]) visible(c *fiber.Ctx) error {
	entries, err := h.moderator.ListVisible(c.UserContext(), c.Query("language"))
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(entries)
}

// pending godoc
// @Summary Moderation queue
// @Description Pending revisions, oldest first
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind"
// @Success 200 {array} object
// @Router /api/{kind}/pending [get]
func (h *handlers[V]) pending(c *fiber.Ctx) error {
	pending, err := h.moderator.ListPending(c.UserContext())
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(pending)
}

// getRevision godoc
// @Summary Get a revision
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param nodeId path string true "Revision ID"
// @Success 200 {object} object
// @Failure 404 {object} errors.Error
// @Router /api/{kind}/revisions/{nodeId} [get]
func (h *handlers[V]) getRevision(c *fiber.Ctx) error {
	node, err := h.repo.Node(c.UserContext(), c.Params("nodeId"))
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	status, err := h.moderator.Status(c.UserContext(), node.ID)
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(RevisionResponse[V]{Node: node, Status: status})
}

// next godoc
// @Summary Successor of a revision
// @Tags Content
// @Produce json
// @Param kind path string true "Content kind"
// @Param nodeId path string true "Revision ID"
// @Success 200 {object} object
// @Success 204 "Revision is the newest of its chain"
// @Failure 404 {object} errors.Error
// @Router /api/{kind}/revisions/{nodeId}/next [get]
func (h *handlers[V]) next(c *fiber.Ctx) error {
	node, err := h.repo.Next(c.UserContext(), c.Params("nodeId"))
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	if node == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(node)
}

// moderate godoc
// @Summary Change moderation status
// @Description approve, reject, request-deletion or decline-deletion
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind"
// @Param nodeId path string true "Revision ID"
// @Param action path string true "Action" Enums(approve, reject, request-deletion, decline-deletion)
// @Param X-Author-Id header string true "Acting user"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/revisions/{nodeId}/{action} [post]
func (h *handlers[V]) moderate(action func(ctx context.Context, nodeID string, actorID string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := actingUser(c)
		if !ok {
			return unauthorized(c)
		}
		nodeID := c.Params("nodeId")
		if err := action(c.UserContext(), nodeID, user); err != nil {
			return apiErrors.Handle(c, h.logger, err)
		}
		status, err := h.moderator.Status(c.UserContext(), nodeID)
		if err != nil {
			return apiErrors.Handle(c, h.logger, err)
		}
		return c.JSON(StatusResponse{NodeID: nodeID, Status: status})
	}
}

// confirmDeletion godoc
// @Summary Confirm a deletion request
// @Description Applies the configured delete policy (revert or cascade)
// @Tags Moderation
// @Produce json
// @Param kind path string true "Content kind"
// @Param nodeId path string true "Revision ID"
// @Param X-Author-Id header string true "Acting user"
// @Success 200 {object} moderation.Removal
// @Failure 404 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/{kind}/revisions/{nodeId}/confirm-deletion [post]
func (h *handlers[V]) confirmDeletion(c *fiber.Ctx) error {
	user, ok := actingUser(c)
	if !ok {
		return unauthorized(c)
	}
	removal, err := h.moderator.ConfirmDeletion(c.UserContext(), c.Params("nodeId"), user)
	if err != nil {
		return apiErrors.Handle(c, h.logger, err)
	}
	return c.JSON(removal)
}

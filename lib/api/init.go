package api

import (
	"github.com/geocontent/backend/lib"
	apiContent "github.com/geocontent/backend/lib/api/content"
	apiErrors "github.com/geocontent/backend/lib/api/errors"
	"github.com/geocontent/backend/lib/api/languages"
	"github.com/geocontent/backend/lib/api/stats"
	"github.com/geocontent/backend/lib/content"
	"github.com/geocontent/backend/lib/moderation"
	"github.com/geocontent/backend/lib/ratelimiter"
	"github.com/geocontent/backend/lib/revision"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

func InitAPI(store *lib.InitStore) {
	store.API = store.C.Group("/api")
	store.API.Use(ratelimiter.New(store.RetrievedSettings.RateLimiting, apiContent.AuthorHeader, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(apiErrors.TooManyRequestsError)
	}))

	mountKind[content.Tag](store, content.KindTag)
	mountKind[content.Waypoint](store, content.KindWaypoint)
	mountKind[content.Media](store, content.KindMedia)
	mountKind[content.StaticContent](store, content.KindStatic)

	languages.Init(store)
	store.API.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(apiErrors.UnknownKindError)
	})
	stats.Init(store)
	store.C.Get("/swagger/*", swagger.HandlerDefault)
}

func mountKind[V content.Value](store *lib.InitStore, kind string) {
	logger := store.Logger.With("kind", kind)
	repo := revision.NewRepository(
		store.Store,
		content.NewStrategy[V](kind, store.Validator),
		logger,
		revision.WithAppendAttempts(store.RetrievedSettings.Moderation.AppendRetries),
	)
	moderator := moderation.NewModerator(repo, store.Store, moderation.Config{
		TrustedAuthors: store.RetrievedSettings.Moderation.TrustedAuthors,
		DeletePolicy:   store.RetrievedSettings.Moderation.DeletePolicy,
	}, logger)
	apiContent.Init(store.API, moderator, logger)
}

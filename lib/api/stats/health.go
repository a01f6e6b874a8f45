package stats

import (
	"context"
	"time"

	"github.com/geocontent/backend/lib/db"
	"github.com/gofiber/fiber/v2"
)

type DBChecker struct {
	db db.DataStore
}

func (d DBChecker) Name() string {
	return "database"
}

func (d DBChecker) Check(_ context.Context) Check {
	err := d.db.Ping()

	if err != nil {
		return Check{
			Status: StatusFail,
			Output: err.Error(),
		}
	}

	return Check{
		Status:     StatusPass,
		Observed:   "ok",
		ObservedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// LanguageChecker warns when no language is active, since nothing can be
// listed then.
type LanguageChecker struct {
	db db.DataStore
}

func (l LanguageChecker) Name() string {
	return "languages"
}

func (l LanguageChecker) Check(ctx context.Context) Check {
	languages, err := l.db.GetLanguages(ctx)
	if err != nil {
		return Check{
			Status: StatusFail,
			Output: err.Error(),
		}
	}
	active := 0
	for _, language := range languages {
		if language.Active {
			active++
		}
	}
	if active == 0 {
		return Check{
			Status:   StatusWarn,
			Observed: active,
			Output:   "no active language",
		}
	}

	return Check{
		Status:   StatusPass,
		Observed: active,
	}
}

// Handler godoc
// @Summary Health check endpoint
// @Description Returns the health status of the service (RFC Health Check Draft)
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func Handler(
	version string,
	releaseID string,
	serviceID string,
	checkers []Checker,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := HealthResponse{
			Status:    StatusPass,
			Version:   version,
			ReleaseID: releaseID,
			ServiceID: serviceID,
			Checks:    map[string][]Check{},
		}

		httpStatus := fiber.StatusOK

		for _, checker := range checkers {
			check := checker.Check(c.UserContext())
			resp.Checks[checker.Name()] = []Check{check}

			switch check.Status {
			case StatusFail:
				resp.Status = StatusFail
				httpStatus = fiber.StatusServiceUnavailable
			case StatusWarn:
				if resp.Status != StatusFail {
					resp.Status = StatusWarn
					httpStatus = fiber.StatusOK
				}
			}
		}

		return c.Status(httpStatus).JSON(resp)
	}
}

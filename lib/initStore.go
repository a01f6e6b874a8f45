package lib

import (
	"github.com/geocontent/backend/lib/db"
	"github.com/geocontent/backend/lib/settings"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InitStore carries the shared dependencies handed to every API module.
type InitStore struct {
	C                 *fiber.App
	API               fiber.Router
	RetrievedSettings *settings.Settings
	Store             db.DataStore
	Validator         *validator.Validate
	Logger            *zap.SugaredLogger
}

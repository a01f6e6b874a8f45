package languages

import (
	"strings"

	"github.com/geocontent/backend/lib"
	apiErrors "github.com/geocontent/backend/lib/api/errors"
	"github.com/geocontent/backend/lib/exception"
	modelDB "github.com/geocontent/backend/lib/models/db"
	"github.com/gofiber/fiber/v2"
)

type Language struct {
	Code   string `json:"code" example:"en"`
	Name   string `json:"name" example:"English"`
	Active bool   `json:"active" example:"true"`
}

type SaveLanguageRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Active bool   `json:"active"`
}

func Init(store *lib.InitStore) {
	store.API.Get("/languages", GetLanguages(store))
	store.API.Put("/languages/:code", SaveLanguage(store))
}

// GetLanguages godoc
// @Summary List languages
// @Tags Languages
// @Produce json
// @Success 200 {array} Language
// @Router /api/languages [get]
func GetLanguages(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		languages, err := store.Store.GetLanguages(c.UserContext())
		if err != nil {
			return apiErrors.Handle(c, store.Logger, err)
		}
		response := make([]Language, 0, len(languages))
		for _, language := range languages {
			response = append(response, Language{Code: language.Code, Name: language.Name, Active: language.Active})
		}
		return c.JSON(response)
	}
}

// SaveLanguage godoc
// @Summary Create or update a language
// @Description Deactivating a language hides its content from listings
// @Tags Languages
// @Accept json
// @Produce json
// @Param code path string true "Language code"
// @Param X-Author-Id header string true "Acting user"
// @Param request body SaveLanguageRequest true "Language"
// @Success 200 {object} Language
// @Failure 400 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Failure 429 {object} errors.Error
// @Router /api/languages/{code} [put]
func SaveLanguage(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := strings.TrimSpace(c.Get("X-Author-Id"))
		if user == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(apiErrors.UnauthorizedError)
		}
		code := strings.ToLower(c.Params("code"))
		if err := store.Validator.Var(code, "required,bcp47_language_tag"); err != nil {
			return apiErrors.Handle(c, store.Logger, exception.NewValidationError("code", "language code must be a BCP 47 tag"))
		}

		var request SaveLanguageRequest
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiErrors.InvalidRequestError)
		}
		if err := store.Validator.Struct(request); err != nil {
			return apiErrors.Handle(c, store.Logger, exception.NewValidationError("name", err.Error()))
		}

		language := modelDB.LanguageDB{Code: code, Name: request.Name, Active: request.Active}
		if err := store.Store.SaveLanguage(c.UserContext(), language); err != nil {
			return apiErrors.Handle(c, store.Logger, err)
		}
		store.Logger.Infow("Language saved", "code", code, "active", request.Active, "user", user)
		return c.JSON(Language{Code: code, Name: request.Name, Active: request.Active})
	}
}

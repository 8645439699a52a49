package level

import (
	"gdps-backend/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
)

// Feature wires the level handler into the application.
type Feature struct {
	service *Service
	apiKey  string
}

// NewFeature creates the level feature for registration with the loader.
func NewFeature(service *Service, apiKey string) *Feature {
	return &Feature{service: service, apiKey: apiKey}
}

func (f *Feature) Name() string {
	return "levels"
}

func (f *Feature) IsEnabled() bool {
	return true
}

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app, auth.New(f.apiKey))
	return nil
}

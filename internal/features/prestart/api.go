package prestart

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PrestartApi struct {
	PrestartController *PrestartController
	Config             *config.Config
}

func NewPrestartApi(prestartController *PrestartController, config *config.Config) *PrestartApi {
	return &PrestartApi{
		PrestartController: prestartController,
		Config:             config,
	}
}

func (api *PrestartApi) Setup(app *fiber.App) {
	group := app.Group("/api/prestart", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.PrestartController.Create)
	group.Get("/", api.PrestartController.List)
	group.Get("/:id", api.PrestartController.Get)
	group.Delete("/:id", api.PrestartController.Delete)
}

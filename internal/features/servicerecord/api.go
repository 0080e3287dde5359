package servicerecord

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ServiceRecordApi struct {
	ServiceRecordController *ServiceRecordController
	Config                  *config.Config
}

func NewServiceRecordApi(serviceRecordController *ServiceRecordController, config *config.Config) *ServiceRecordApi {
	return &ServiceRecordApi{
		ServiceRecordController: serviceRecordController,
		Config:                  config,
	}
}

func (api *ServiceRecordApi) Setup(app *fiber.App) {
	group := app.Group("/api/services", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.ServiceRecordController.Create)
	group.Get("/", api.ServiceRecordController.List)
	group.Get("/:id", api.ServiceRecordController.Get)
	group.Delete("/:id", api.ServiceRecordController.Delete)
}

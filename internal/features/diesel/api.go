package diesel

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DieselApi struct {
	DieselController *DieselController
	Config           *config.Config
}

func NewDieselApi(dieselController *DieselController, config *config.Config) *DieselApi {
	return &DieselApi{
		DieselController: dieselController,
		Config:           config,
	}
}

func (api *DieselApi) Setup(app *fiber.App) {
	group := app.Group("/api/diesel", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.DieselController.Create)
	group.Get("/", api.DieselController.List)
	group.Post("/import/legacy", middleware.RequireRole(utils.RoleAdmin, utils.RoleSuperAdmin), api.DieselController.ImportLegacy)
}

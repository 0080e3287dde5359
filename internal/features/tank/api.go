package tank

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TankApi struct {
	TankController *TankController
	Config         *config.Config
}

func NewTankApi(tankController *TankController, config *config.Config) *TankApi {
	return &TankApi{
		TankController: tankController,
		Config:         config,
	}
}

func (api *TankApi) Setup(app *fiber.App) {
	group := app.Group("/api/tanks", middleware.AuthMiddleware(api.Config.SkipAuth))

	admin := middleware.RequireRole(utils.RoleAdmin, utils.RoleSuperAdmin)
	group.Post("/", admin, api.TankController.Create)
	group.Get("/", api.TankController.List)
	group.Get("/:id", api.TankController.Get)
	group.Patch("/:id/level", api.TankController.AdjustLevel)
	group.Delete("/:id", admin, api.TankController.Delete)
}

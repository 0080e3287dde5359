package machine

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type MachineApi struct {
	MachineController *MachineController
	Config            *config.Config
}

func NewMachineApi(machineController *MachineController, config *config.Config) *MachineApi {
	return &MachineApi{
		MachineController: machineController,
		Config:            config,
	}
}

func (api *MachineApi) Setup(app *fiber.App) {
	group := app.Group("/api/machines", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.MachineController.Create)
	group.Get("/", api.MachineController.List)
	group.Get("/:id", api.MachineController.Get)
	group.Patch("/:id/hours", api.MachineController.UpdateHours)
	group.Patch("/:id/service", api.MachineController.RecordService)
	group.Delete("/:id", middleware.RequireRole(utils.RoleAdmin, utils.RoleSuperAdmin), api.MachineController.Delete)
}

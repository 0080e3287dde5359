package organization

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type OrganizationApi struct {
	OrganizationController *OrganizationController
	Config                 *config.Config
}

func NewOrganizationApi(organizationController *OrganizationController, config *config.Config) *OrganizationApi {
	return &OrganizationApi{
		OrganizationController: organizationController,
		Config:                 config,
	}
}

func (api *OrganizationApi) Setup(app *fiber.App) {
	group := app.Group("/api/organizations", middleware.AuthMiddleware(api.Config.SkipAuth))

	superAdmin := middleware.RequireRole(utils.RoleSuperAdmin)
	group.Post("/", superAdmin, api.OrganizationController.Create)
	group.Get("/", superAdmin, api.OrganizationController.List)
	group.Get("/:id", api.OrganizationController.Get)
	group.Put("/:id", superAdmin, api.OrganizationController.Update)
	group.Delete("/:id", superAdmin, api.OrganizationController.Delete)
}

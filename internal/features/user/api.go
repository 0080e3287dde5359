package user

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	UserController *UserController
	Config         *config.Config
}

func NewUserApi(userController *UserController, config *config.Config) *UserApi {
	return &UserApi{
		UserController: userController,
		Config:         config,
	}
}

func (api *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(api.Config.SkipAuth))

	admin := middleware.RequireRole(utils.RoleAdmin, utils.RoleSuperAdmin)
	group.Post("/", admin, api.UserController.Create)
	group.Get("/", admin, api.UserController.List)
	group.Get("/:id", api.UserController.Get)
	group.Put("/:id", admin, api.UserController.Update)
	group.Delete("/:id", admin, api.UserController.Delete)
}

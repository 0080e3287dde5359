package user

import (
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	UserService UserService
}

func NewUserController(userService UserService) *UserController {
	return &UserController{UserService: userService}
}

func (c *UserController) Create(ctx *fiber.Ctx) error {
	var user User
	if err := ctx.BodyParser(&user); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if ok && claims.Role == utils.RoleAdmin {
		// Org admins can only create users inside their own organization.
		user.OrganizationID = claims.OrganizationID
	}

	if err := c.UserService.CreateUser(ctx.Context(), &user); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(user)
}

func (c *UserController) List(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	organizationID := ctx.Query("organizationId")
	if claims.Role != utils.RoleSuperAdmin {
		organizationID = claims.OrganizationID
	}

	users, err := c.UserService.ListUsers(ctx.Context(), organizationID, ctx.Query("workplace"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(users)
}

func (c *UserController) Get(ctx *fiber.Ctx) error {
	user, err := c.UserService.GetUser(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return ctx.JSON(user)
}

func (c *UserController) Update(ctx *fiber.Ctx) error {
	var user User
	if err := ctx.BodyParser(&user); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.UserService.UpdateUser(ctx.Context(), ctx.Params("id"), &user); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(user)
}

func (c *UserController) Delete(ctx *fiber.Ctx) error {
	if err := c.UserService.DeleteUser(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

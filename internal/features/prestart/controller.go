package prestart

import (
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type PrestartController struct {
	PrestartRepo PrestartRepository
}

func NewPrestartController(prestartRepo PrestartRepository) *PrestartController {
	return &PrestartController{PrestartRepo: prestartRepo}
}

func (c *PrestartController) Create(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var prestart Prestart
	if err := ctx.BodyParser(&prestart); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	prestart.UserID = claims.UserID

	if err := c.PrestartRepo.Create(ctx.Context(), &prestart); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(prestart)
}

func (c *PrestartController) List(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	filter := bson.M{}
	if claims.Role == utils.RoleUser {
		filter["userId"] = claims.UserID
	}
	if machineID := ctx.Query("machineId"); machineID != "" {
		filter["machineId"] = machineID
	}

	prestarts, err := c.PrestartRepo.List(ctx.Context(), filter, int64(ctx.QueryInt("limit")))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(prestarts)
}

func (c *PrestartController) Get(ctx *fiber.Ctx) error {
	prestart, err := c.PrestartRepo.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Prestart not found"})
	}
	return ctx.JSON(prestart)
}

func (c *PrestartController) Delete(ctx *fiber.Ctx) error {
	if err := c.PrestartRepo.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

package diesel

import (
	"time"

	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DieselController struct {
	DieselService DieselService
}

func NewDieselController(dieselService DieselService) *DieselController {
	return &DieselController{DieselService: dieselService}
}

func (c *DieselController) Create(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var record DieselRecord
	if err := ctx.BodyParser(&record); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.DieselService.CreateRecord(ctx.Context(), claims, &record); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(record)
}

func (c *DieselController) List(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	records, err := c.DieselService.ListRecords(ctx.Context(), claims, ctx.Query("machineId"), int64(ctx.QueryInt("limit")))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(records)
}

func (c *DieselController) ImportLegacy(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var body struct {
		Since time.Time `json:"since"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := c.DieselService.ImportLegacy(ctx.Context(), claims, body.Since)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}

package tank

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type TankController struct {
	TankRepo TankRepository
}

func NewTankController(tankRepo TankRepository) *TankController {
	return &TankController{TankRepo: tankRepo}
}

func (c *TankController) Create(ctx *fiber.Ctx) error {
	var tank Tank
	if err := ctx.BodyParser(&tank); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.TankRepo.Create(ctx.Context(), &tank); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(tank)
}

func (c *TankController) List(ctx *fiber.Ctx) error {
	filter := bson.M{}
	if workplace := ctx.Query("workplace"); workplace != "" {
		filter["workplaceName"] = workplace
	}

	tanks, err := c.TankRepo.List(ctx.Context(), filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(tanks)
}

func (c *TankController) Get(ctx *fiber.Ctx) error {
	tank, err := c.TankRepo.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tank not found"})
	}
	return ctx.JSON(tank)
}

func (c *TankController) AdjustLevel(ctx *fiber.Ctx) error {
	var body struct {
		Delta float64 `json:"delta"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.TankRepo.AdjustLevel(ctx.Context(), ctx.Params("id"), body.Delta); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *TankController) Delete(ctx *fiber.Ctx) error {
	if err := c.TankRepo.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

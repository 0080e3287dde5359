package machine

import (
	"time"

	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type MachineController struct {
	MachineService MachineService
}

func NewMachineController(machineService MachineService) *MachineController {
	return &MachineController{MachineService: machineService}
}

func (c *MachineController) Create(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var machine Machine
	if err := ctx.BodyParser(&machine); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.MachineService.CreateMachine(ctx.Context(), claims, &machine); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(machine)
}

func (c *MachineController) List(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	machines, err := c.MachineService.ListMachines(ctx.Context(), claims, ctx.Query("workplace"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(machines)
}

func (c *MachineController) Get(ctx *fiber.Ctx) error {
	machine, err := c.MachineService.GetMachine(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}
	return ctx.JSON(machine)
}

func (c *MachineController) UpdateHours(ctx *fiber.Ctx) error {
	var body struct {
		CurrentHours float64 `json:"currentHours"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.MachineService.UpdateHours(ctx.Context(), ctx.Params("id"), body.CurrentHours); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *MachineController) RecordService(ctx *fiber.Ctx) error {
	var body struct {
		ServicedAt time.Time `json:"servicedAt"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.ServicedAt.IsZero() {
		body.ServicedAt = time.Now()
	}

	if err := c.MachineService.RecordService(ctx.Context(), ctx.Params("id"), body.ServicedAt); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true})
}

func (c *MachineController) Delete(ctx *fiber.Ctx) error {
	if err := c.MachineService.DeleteMachine(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

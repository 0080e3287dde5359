package servicerecord

import (
	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type ServiceRecordController struct {
	ServiceRecordRepo ServiceRecordRepository
}

func NewServiceRecordController(serviceRecordRepo ServiceRecordRepository) *ServiceRecordController {
	return &ServiceRecordController{ServiceRecordRepo: serviceRecordRepo}
}

func (c *ServiceRecordController) Create(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var record ServiceRecord
	if err := ctx.BodyParser(&record); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	record.UserID = claims.UserID

	if err := c.ServiceRecordRepo.Create(ctx.Context(), &record); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(record)
}

func (c *ServiceRecordController) List(ctx *fiber.Ctx) error {
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

	records, err := c.ServiceRecordRepo.List(ctx.Context(), filter, int64(ctx.QueryInt("limit")))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(records)
}

func (c *ServiceRecordController) Get(ctx *fiber.Ctx) error {
	record, err := c.ServiceRecordRepo.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service record not found"})
	}
	return ctx.JSON(record)
}

func (c *ServiceRecordController) Delete(ctx *fiber.Ctx) error {
	if err := c.ServiceRecordRepo.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

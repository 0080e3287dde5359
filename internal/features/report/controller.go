package report

import (
	"errors"
	"fmt"

	"go-fleet/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	ReportService ReportService
	Log           *zap.Logger
}

func NewReportController(reportService ReportService, log *zap.Logger) *ReportController {
	return &ReportController{ReportService: reportService, Log: log}
}

func identityFromClaims(ctx *fiber.Ctx) (Identity, bool) {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		UserID:         claims.UserID,
		Role:           claims.Role,
		OrganizationID: claims.OrganizationID,
		CredentialID:   claims.CredentialID,
	}, true
}

func (c *ReportController) Generate(ctx *fiber.Ctx) error {
	identity, ok := identityFromClaims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(GenerateResponse{Success: false, Error: "Invalid request body"})
	}

	resp, err := c.ReportService.Generate(ctx.Context(), identity, req)
	if err != nil {
		return c.failure(ctx, identity, err)
	}
	return ctx.JSON(resp)
}

// failure converts the error taxonomy into structured responses. Known
// no-data conditions are success=false payloads, not transport errors.
func (c *ReportController) failure(ctx *fiber.Ctx, identity Identity, err error) error {
	var emptyWorkplace *EmptyWorkplaceError
	var machineNotFound *MachineNotFoundError
	var machineMismatch *MachineNotInWorkplaceError
	var unsupportedOrg *UnsupportedOrganizationalTypeError

	switch {
	case errors.Is(err, ErrMissingReportType), errors.Is(err, ErrInvalidReportType):
		return ctx.Status(fiber.StatusBadRequest).JSON(GenerateResponse{Success: false, Error: err.Error()})
	case errors.As(err, &emptyWorkplace), errors.As(err, &machineNotFound), errors.As(err, &machineMismatch):
		return ctx.JSON(GenerateResponse{Success: false, Error: err.Error()})
	case errors.As(err, &unsupportedOrg):
		return ctx.Status(fiber.StatusInternalServerError).JSON(GenerateResponse{Success: false, Error: err.Error()})
	default:
		c.Log.Error("report generation failed",
			zap.String("userId", identity.UserID),
			zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(GenerateResponse{Success: false, Error: err.Error()})
	}
}

func (c *ReportController) List(ctx *fiber.Ctx) error {
	identity, ok := identityFromClaims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	descriptors, err := c.ReportService.ListDescriptors(ctx.Context(), identity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(descriptors)
}

func (c *ReportController) Download(ctx *fiber.Ctx) error {
	identity, ok := identityFromClaims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id := ctx.Params("id")
	format := ctx.Query("format", "csv")

	data, filename, err := c.ReportService.Download(ctx.Context(), identity, id, format)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	contentType := "text/csv"
	if format == "xlsx" || format == "excel" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	ctx.Set("Content-Type", contentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}

func (c *ReportController) Delete(ctx *fiber.Ctx) error {
	identity, ok := identityFromClaims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id := ctx.Params("id")
	if err := c.ReportService.DeleteDescriptor(ctx.Context(), identity, id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

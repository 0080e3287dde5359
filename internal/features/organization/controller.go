package organization

import (
	"github.com/gofiber/fiber/v2"
)

type OrganizationController struct {
	OrganizationRepo OrganizationRepository
}

func NewOrganizationController(organizationRepo OrganizationRepository) *OrganizationController {
	return &OrganizationController{OrganizationRepo: organizationRepo}
}

func (c *OrganizationController) Create(ctx *fiber.Ctx) error {
	var org Organization
	if err := ctx.BodyParser(&org); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.OrganizationRepo.Create(ctx.Context(), &org); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(org)
}

func (c *OrganizationController) List(ctx *fiber.Ctx) error {
	orgs, err := c.OrganizationRepo.List(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(orgs)
}

func (c *OrganizationController) Get(ctx *fiber.Ctx) error {
	org, err := c.OrganizationRepo.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Organization not found"})
	}
	return ctx.JSON(org)
}

func (c *OrganizationController) Update(ctx *fiber.Ctx) error {
	var org Organization
	if err := ctx.BodyParser(&org); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.OrganizationRepo.Update(ctx.Context(), ctx.Params("id"), &org); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(org)
}

func (c *OrganizationController) Delete(ctx *fiber.Ctx) error {
	if err := c.OrganizationRepo.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

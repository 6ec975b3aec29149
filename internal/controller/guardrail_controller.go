package controller

import (
	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGuardrailController interface {
	RegisterRoutes(r fiber.Router)
	ValidateInput(ctx *fiber.Ctx) error
	ValidateOutput(ctx *fiber.Ctx) error
}

type guardrailController struct {
	guardrailService service.IGuardrailService
}

func NewGuardrailController(guardrailService service.IGuardrailService) IGuardrailController {
	return &guardrailController{
		guardrailService: guardrailService,
	}
}

func (c *guardrailController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guardrail/v1")
	h.Post("validate/input", c.ValidateInput)
	h.Post("validate/output", c.ValidateOutput)
}

func (c *guardrailController) ValidateInput(ctx *fiber.Ctx) error {
	var req dto.ValidateInputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guardrailService.ValidateInput(ctx.Context(), &req)
	if err != nil {
		return err
	}
	// Verdicts are returned bare, not enveloped: remote agent clients decode
	// this payload directly.
	return ctx.JSON(res)
}

func (c *guardrailController) ValidateOutput(ctx *fiber.Ctx) error {
	var req dto.ValidateOutputRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guardrailService.ValidateOutput(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

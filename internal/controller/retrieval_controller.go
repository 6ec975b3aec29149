package controller

import (
	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRetrievalController interface {
	RegisterRoutes(r fiber.Router)
	Retrieve(ctx *fiber.Ctx) error
}

type retrievalController struct {
	retrievalService service.IRetrievalService
}

func NewRetrievalController(retrievalService service.IRetrievalService) IRetrievalController {
	return &retrievalController{
		retrievalService: retrievalService,
	}
}

func (c *retrievalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/retrieval/v1")
	h.Post("retrieve", c.Retrieve)
}

func (c *retrievalController) Retrieve(ctx *fiber.Ctx) error {
	var req dto.RetrieveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.Retrieve(ctx.Context(), &req)
	if err != nil {
		return err
	}
	// Bare payload, consumed directly by remote agent clients.
	return ctx.JSON(res)
}

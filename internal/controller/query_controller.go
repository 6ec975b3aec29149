package controller

import (
	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{
		queryService: queryService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Post("query", c.Query)
}

// Query runs one question through the full pipeline. Validation failures are
// rejected here, before any session state exists and before any collaborator
// is called.
func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	correlationID, _ := ctx.Locals("correlation_id").(string)

	res, err := c.queryService.RunQuery(ctx.Context(), correlationID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run query", res))
}

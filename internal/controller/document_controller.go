package controller

import (
	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	var req dto.UploadDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}

	// Identity comes from the token, never from the body.
	req.TenantId, _ = ctx.Locals("tenant_id").(string)
	req.UserId, _ = ctx.Locals("user_id").(string)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	correlationID, _ := ctx.Locals("correlation_id").(string)
	reqCtx := serverutils.WithCorrelationID(ctx.Context(), correlationID)

	res, err := c.documentService.Upload(reqCtx, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	tenantId, _ := ctx.Locals("tenant_id").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid document id")
	}

	res, err := c.documentService.Show(ctx.Context(), tenantId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	tenantId, _ := ctx.Locals("tenant_id").(string)

	res, err := c.documentService.List(ctx.Context(), tenantId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	tenantId, _ := ctx.Locals("tenant_id").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), tenantId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete document", struct{}{}))
}

package controller

import (
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Clone(ctx *fiber.Ctx) error
	Render(ctx *fiber.Ctx) error
	Rate(ctx *fiber.Ctx) error
}

type templateController struct {
	service service.ITemplateService
}

func NewTemplateController(service service.ITemplateService) ITemplateController {
	return &templateController{service: service}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1/templates")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(entity.RoleAdmin))
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Post(":id/deactivate", c.Deactivate)
	h.Post(":id/clone", c.Clone)
	h.Post(":id/render", c.Render)

	// Rating comes from visitors after a bot interaction.
	rate := r.Group("/chat/v1/templates")
	rate.Use(serverutils.JwtMiddleware)
	rate.Post(":id/rate", c.Rate)
}

func (c *templateController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Template created", res))
}

func (c *templateController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	var req dto.UpdateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template updated", res))
}

func (c *templateController) Deactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	if err := c.service.Deactivate(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template deactivated", nil))
}

func (c *templateController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show template", res))
}

func (c *templateController) GetAll(ctx *fiber.Ctx) error {
	var req dto.TemplateListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list templates", res))
}

func (c *templateController) Clone(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	res, err := c.service.Clone(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Template cloned", res))
}

func (c *templateController) Render(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	var req dto.RenderTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Render(ctx.Context(), id, req.Variables)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template rendered", res))
}

func (c *templateController) Rate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("template not found")
	}

	var req dto.RateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.Rate(ctx.Context(), id, req.Rating); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Template rated", nil))
}

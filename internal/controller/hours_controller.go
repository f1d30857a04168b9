package controller

import (
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHoursController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type hoursController struct {
	service service.IHoursService
}

func NewHoursController(service service.IHoursService) IHoursController {
	return &hoursController{service: service}
}

func (c *hoursController) RegisterRoutes(r fiber.Router) {
	// The status endpoint is public: the widget polls it before any auth.
	r.Get("/chat/v1/hours/status", c.Status)

	h := r.Group("/admin/v1/hours")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(entity.RoleAdmin))
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Post(":id/activate", c.Activate)
	h.Post(":id/deactivate", c.Deactivate)
}

func (c *hoursController) Status(ctx *fiber.Ctx) error {
	res, err := c.service.Status(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get hours status", res))
}

func (c *hoursController) Create(ctx *fiber.Ctx) error {
	var req dto.BusinessHoursRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Business hours created", res))
}

func (c *hoursController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("business hours config not found")
	}

	var req dto.BusinessHoursRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Business hours updated", res))
}

func (c *hoursController) Activate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("business hours config not found")
	}

	if err := c.service.Activate(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Business hours activated", nil))
}

func (c *hoursController) Deactivate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("business hours config not found")
	}

	if err := c.service.Deactivate(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Business hours deactivated", nil))
}

func (c *hoursController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("business hours config not found")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show business hours", res))
}

func (c *hoursController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list business hours", res))
}

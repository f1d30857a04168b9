package controller

import (
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/entity"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Heartbeat(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type agentController struct {
	service service.IAgentService
}

func NewAgentController(service service.IAgentService) IAgentController {
	return &agentController{service: service}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1/agents")
	h.Use(serverutils.JwtMiddleware)

	// Directory management is admin-only; agents manage their own presence.
	h.Post("", serverutils.RequireRole(entity.RoleAdmin), c.Create)
	h.Put(":id", serverutils.RequireRole(entity.RoleAdmin), c.Update)
	h.Get("", serverutils.RequireRole(entity.RoleAgent, entity.RoleAdmin), c.GetAll)
	h.Get(":id", serverutils.RequireRole(entity.RoleAgent, entity.RoleAdmin), c.Show)
	h.Put(":id/status", serverutils.RequireRole(entity.RoleAgent, entity.RoleAdmin), c.UpdateStatus)
	h.Post(":id/heartbeat", serverutils.RequireRole(entity.RoleAgent, entity.RoleAdmin), c.Heartbeat)
}

func (c *agentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Agent created", res))
}

func (c *agentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("agent not found")
	}

	var req dto.UpdateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Agent updated", res))
}

func (c *agentController) UpdateStatus(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("agent not found")
	}

	// Agents can only flip their own status.
	if caller.Role == entity.RoleAgent && caller.Id != id {
		return serverutils.NewUnauthorizedError("agents can only update their own status")
	}

	var req dto.UpdateAgentStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.UpdateStatus(ctx.Context(), id, req.Status); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Agent status updated", nil))
}

func (c *agentController) Heartbeat(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("agent not found")
	}
	if caller.Role == entity.RoleAgent && caller.Id != id {
		return serverutils.NewUnauthorizedError("agents can only heartbeat themselves")
	}

	if err := c.service.Heartbeat(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Heartbeat recorded", nil))
}

func (c *agentController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("agent not found")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show agent", res))
}

func (c *agentController) GetAll(ctx *fiber.Ctx) error {
	var req dto.AgentListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list agents", res))
}

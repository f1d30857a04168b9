package controller

import (
	"github.com/sansitamalhotra/ChatBot-sub003/internal/dto"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/pkg/serverutils"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	RequestAgent(ctx *fiber.Ctx) error
	TransferSession(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	SessionMetrics(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	EditMessage(ctx *fiber.Ctx) error
	MarkDelivered(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
}

type chatController struct {
	sessions service.ISessionService
	messages service.IMessageService
}

func NewChatController(sessions service.ISessionService, messages service.IMessageService) IChatController {
	return &chatController{sessions: sessions, messages: messages}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/sessions", c.StartSession)
	h.Get("/sessions", c.ListSessions)
	h.Get("/sessions/:id", c.ShowSession)
	h.Post("/sessions/:id/request-agent", c.RequestAgent)
	h.Post("/sessions/:id/transfer", c.TransferSession)
	h.Post("/sessions/:id/close", c.CloseSession)
	h.Get("/sessions/:id/metrics", c.SessionMetrics)

	h.Post("/sessions/:id/messages", c.SendMessage)
	h.Get("/sessions/:id/messages", c.GetMessages)
	h.Post("/sessions/:id/messages/delivered", c.MarkDelivered)
	h.Post("/sessions/:id/messages/read", c.MarkRead)
	h.Put("/messages/:id", c.EditMessage)
}

func (c *chatController) StartSession(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)

	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.sessions.Start(ctx.Context(), caller, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *chatController) ShowSession(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	res, err := c.sessions.Show(ctx.Context(), caller, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)

	var req dto.SessionListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.sessions.GetAll(ctx.Context(), caller, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) RequestAgent(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	res, err := c.sessions.RequestAgent(ctx.Context(), caller, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Agent requested", res))
}

func (c *chatController) TransferSession(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	var req dto.TransferSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.sessions.Transfer(ctx.Context(), caller, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session transferred", res))
}

func (c *chatController) CloseSession(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	var req dto.CloseSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.sessions.Close(ctx.Context(), caller, id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session closed", nil))
}

func (c *chatController) SessionMetrics(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	res, err := c.sessions.Metrics(ctx.Context(), caller, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show metrics", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.messages.Send(ctx.Context(), caller, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	var req dto.MessageListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.messages.GetMessages(ctx.Context(), caller, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) EditMessage(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("message not found")
	}

	var req dto.EditMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.messages.Edit(ctx.Context(), caller, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message edited", res))
}

func (c *chatController) MarkDelivered(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	if err := c.messages.MarkDelivered(ctx.Context(), caller, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Messages marked delivered", nil))
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	caller, _ := serverutils.CallerFromCtx(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewNotFoundError("session not found")
	}

	var req dto.MarkReadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.messages.MarkRead(ctx.Context(), caller, id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Messages marked read", nil))
}

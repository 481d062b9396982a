package controller

import (
	"errors"
	"strconv"

	"urban-assistant-be/internal/pkg/logger"
	"urban-assistant-be/internal/pkg/serverutils"
	"urban-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	GetQuestions(ctx *fiber.Ctx) error
	GetQuestion(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.ILogService
}

func NewAdminController(service service.ILogService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/admin", auth)

	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)

	h.Get("/questions", c.GetQuestions)
	h.Get("/questions/:correlationId", c.GetQuestion)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))
	level := ctx.Query("level", "")

	logs, err := c.service.GetSystemLogs(ctx.UserContext(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	l, err := c.service.GetLogDetail(ctx.UserContext(), ctx.Params("id"))
	if errors.Is(err, logger.ErrLogNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", l))
}

func (c *adminController) GetQuestions(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "10"))

	logs, err := c.service.GetQuestionLogs(ctx.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Question logs", logs))
}

func (c *adminController) GetQuestion(ctx *fiber.Ctx) error {
	l, err := c.service.GetQuestionLog(ctx.UserContext(), ctx.Params("correlationId"))
	if err != nil {
		return err
	}
	if l == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Question not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Question log", l))
}

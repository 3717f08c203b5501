package controller

import (
	"github.com/gofiber/fiber/v2"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/pkg/serverutils"
	"krishisahay-be/internal/service"
)

type IAdvisoryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
	Trending(ctx *fiber.Ctx) error
	SearchStats(ctx *fiber.Ctx) error
}

type advisoryController struct {
	advisoryService service.IAdvisoryService
}

func NewAdvisoryController(advisoryService service.IAdvisoryService) IAdvisoryController {
	return &advisoryController{
		advisoryService: advisoryService,
	}
}

func (c *advisoryController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
	r.Post("/search", c.Search)
	r.Get("/conversation/:sessionId", c.Conversation)
	r.Get("/trending", c.Trending)
	r.Get("/search-stats", c.SearchStats)
}

func (c *advisoryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisoryService.Ask(ctx.Context(), req.SessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *advisoryController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.advisoryService.Search(ctx.Context(), req.Query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge base", res))
}

func (c *advisoryController) Conversation(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "sessionId is required")
	}

	res := c.advisoryService.Conversation(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *advisoryController) Trending(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show trending topics", c.advisoryService.Trending()))
}

func (c *advisoryController) SearchStats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show search stats", c.advisoryService.SearchStats()))
}

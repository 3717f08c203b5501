package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/pkg/serverutils"
	"krishisahay-be/internal/service"
	"krishisahay-be/pkg/llm"
)

type IWatsonxController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	ClearCache(ctx *fiber.Ctx) error
}

type watsonxController struct {
	watsonxService service.IWatsonxService
}

func NewWatsonxController(watsonxService service.IWatsonxService) IWatsonxController {
	return &watsonxController{
		watsonxService: watsonxService,
	}
}

func (c *watsonxController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/watsonx")
	h.Get("/status", c.Status)
	h.Post("/generate", c.Generate)
	h.Post("/clear-cache", c.ClearCache)
}

func (c *watsonxController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show watsonx status", c.watsonxService.Status()))
}

func (c *watsonxController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.watsonxService.Generate(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			return fiber.NewError(fiber.StatusServiceUnavailable, "watsonx is not configured")
		case errors.Is(err, llm.ErrTimeout):
			return fiber.NewError(fiber.StatusGatewayTimeout, "watsonx generation timed out")
		case errors.Is(err, llm.ErrAuth):
			return fiber.NewError(fiber.StatusBadGateway, "watsonx authentication failed")
		default:
			return fiber.NewError(fiber.StatusBadGateway, "watsonx generation failed")
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate response", res))
}

func (c *watsonxController) ClearCache(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success clear response cache", c.watsonxService.ClearCache()))
}

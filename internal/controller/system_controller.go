package controller

import (
	"github.com/gofiber/fiber/v2"

	"krishisahay-be/internal/pkg/serverutils"
	"krishisahay-be/internal/service"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Analytics(ctx *fiber.Ctx) error
}

type systemController struct {
	systemService service.ISystemService
}

func NewSystemController(systemService service.ISystemService) ISystemController {
	return &systemController{
		systemService: systemService,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/status", c.Status)
	r.Get("/analytics", c.Analytics)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.systemService.Health())
}

func (c *systemController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show status", c.systemService.Status()))
}

func (c *systemController) Analytics(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show analytics", c.systemService.Analytics()))
}

package controller

import (
	"support-routing-be/internal/dto"
	"support-routing-be/internal/pkg/serverutils"
	"support-routing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITurnController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
	ReportFailure(ctx *fiber.Ctx) error
}

type turnController struct {
	turnService service.ITurnService
}

func NewTurnController(turnService service.ITurnService) ITurnController {
	return &turnController{
		turnService: turnService,
	}
}

// Turn ingestion is called by the conversation gateway, which authenticates
// customers upstream; no operator JWT here.
func (c *turnController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/turn/v1")
	h.Post("", c.Process)
	h.Post("failure", c.ReportFailure)
}

func (c *turnController) Process(ctx *fiber.Ctx) error {
	var req dto.ProcessTurnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.turnService.ProcessTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process turn", res))
}

func (c *turnController) ReportFailure(ctx *fiber.Ctx) error {
	var req dto.ReportFailureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.turnService.ReportFailure(ctx.Context(), req.SessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success report failure", res))
}

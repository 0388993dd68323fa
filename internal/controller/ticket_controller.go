package controller

import (
	"support-routing-be/internal/dto"
	"support-routing-be/internal/pkg/serverutils"
	"support-routing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITicketController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Assign(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
	Sweep(ctx *fiber.Ctx) error
}

type ticketController struct {
	ticketService service.ITicketService
}

func NewTicketController(ticketService service.ITicketService) ITicketController {
	return &ticketController{
		ticketService: ticketService,
	}
}

func (c *ticketController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ticket/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("sweep", c.Sweep)
	h.Get(":protocol", c.Show)
	h.Put(":protocol/assign", c.Assign)
	h.Put(":protocol/resolve", c.Resolve)
}

func (c *ticketController) List(ctx *fiber.Ctx) error {
	var req dto.ListTicketsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.ticketService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tickets", res))
}

func (c *ticketController) Show(ctx *fiber.Ctx) error {
	protocol := ctx.Params("protocol")

	res, err := c.ticketService.Show(ctx.Context(), protocol)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show ticket", res))
}

func (c *ticketController) Assign(ctx *fiber.Ctx) error {
	protocol := ctx.Params("protocol")

	var req dto.AssignTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.ticketService.Assign(ctx.Context(), protocol, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success assign ticket", res))
}

func (c *ticketController) Resolve(ctx *fiber.Ctx) error {
	protocol := ctx.Params("protocol")

	var req dto.ResolveTicketRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.ticketService.Resolve(ctx.Context(), protocol, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve ticket", res))
}

func (c *ticketController) Sweep(ctx *fiber.Ctx) error {
	count, err := c.ticketService.SweepSLA(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sweep SLA", fiber.Map{"breached": count}))
}

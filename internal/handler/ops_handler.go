package handler

import (
	"fmt"
	"os"
	"time"

	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/pkg/serverutils"
	"support-routing-be/internal/service"
	internalWS "support-routing-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OpsHandler serves the operator diagnostics surface: the live event stream,
// log read-back, and the SLA report download.
type OpsHandler struct {
	ticketService service.ITicketService
	hub           *internalWS.Hub
	logger        logger.ILogger
}

func NewOpsHandler(ticketService service.ITicketService, hub *internalWS.Hub, log logger.ILogger) *OpsHandler {
	return &OpsHandler{
		ticketService: ticketService,
		hub:           hub,
		logger:        log,
	}
}

// ServeWs upgrades an operator dashboard connection to the live event stream.
func (h *OpsHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on websocket handshakes, so the token also
	// rides a query param.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET_KEY")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("OpsHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	operatorIDStr, ok := claims["operator_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing operator_id"})
	}

	operatorID, err := uuid.Parse(operatorIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid operator ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("OpsHandler", "Starting WebSocket session", map[string]interface{}{"operator_id": operatorID})
			internalWS.ServeWs(h.hub, conn, operatorID)
			h.logger.Info("OpsHandler", "WebSocket session ended", map[string]interface{}{"operator_id": operatorID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// GetLogs reads recent structured log entries back from the log file.
func (h *OpsHandler) GetLogs(c *fiber.Ctx) error {
	level := c.Query("level", "")
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	entries, err := h.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Success get logs", entries))
}

func (h *OpsHandler) GetLogById(c *fiber.Ctx) error {
	entry, err := h.logger.GetLogById(c.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return fiber.NewError(fiber.StatusNotFound, "log entry not found")
	}

	return c.JSON(serverutils.SuccessResponse("Success get log", entry))
}

// DownloadSLAReport streams the xlsx SLA report for a time window.
// Defaults to the last 7 days.
func (h *OpsHandler) DownloadSLAReport(c *fiber.Ctx) error {
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid 'from' timestamp")
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid 'to' timestamp")
		}
		to = parsed
	}

	data, err := h.ticketService.BuildSLAReport(c.Context(), from, to)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("sla-report-%s.xlsx", to.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// RegisterRoutes registers the ops routes.
func (h *OpsHandler) RegisterRoutes(router fiber.Router) {
	ops := router.Group("/ops/v1")
	ops.Use(serverutils.JwtMiddleware)
	ops.Get("logs", h.GetLogs)
	ops.Get("logs/:id", h.GetLogById)
	ops.Get("reports/sla", h.DownloadSLAReport)

	// WebSocket (token validated in the handshake, not the middleware)
	router.Get("/ws", h.ServeWs)
}

package constant

// Customer-facing fallback replies. Portuguese-first with the rest of the
// customer surface.
const (
	ReplyEscalated = "Entendi. Estou transferindo seu atendimento para um especialista. Seu protocolo é %s."
	ReplyRouted    = "Certo! Vou te direcionar para nossa equipe de %s."
	ReplyDegraded  = "Estou com uma instabilidade para consultar as informações agora, mas já encaminhei sua solicitação."
	ReplyResolved  = "Que bom que resolvemos! Se precisar de mais alguma coisa, é só chamar."
)

// Ops event types broadcast to connected operator dashboards.
const (
	EventTicketCreated    = "TICKET_CREATED"
	EventTicketResolved   = "TICKET_RESOLVED"
	EventSLABreached      = "SLA_BREACHED"
	EventSessionEscalated = "SESSION_ESCALATED"
)

package service

import (
	"context"
	"time"

	"support-routing-be/internal/constant"
	"support-routing-be/internal/dto"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/pkg/mailer"
	"support-routing-be/internal/repository/memory"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/internal/repository/unitofwork"
	"support-routing-be/internal/websocket"
	"support-routing-be/pkg/escalation"
	"support-routing-be/pkg/events"
	"support-routing-be/pkg/learning"
	"support-routing-be/pkg/report"
	"support-routing-be/pkg/ticket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITicketService interface {
	List(ctx context.Context, req *dto.ListTicketsRequest) ([]*dto.TicketResponse, error)
	Show(ctx context.Context, protocol string) (*dto.TicketResponse, error)
	Assign(ctx context.Context, protocol string, req *dto.AssignTicketRequest) (*dto.TicketResponse, error)
	Resolve(ctx context.Context, protocol string, req *dto.ResolveTicketRequest) (*dto.TicketResponse, error)
	SweepSLA(ctx context.Context) (int, error)
	BuildSLAReport(ctx context.Context, from, to time.Time) ([]byte, error)
}

type ticketService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	tickets    *ticket.Manager
	manager    *escalation.Manager
	recorder   *learning.Recorder
	mail       mailer.IEmailService
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewTicketService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	tickets *ticket.Manager,
	manager *escalation.Manager,
	recorder *learning.Recorder,
	mail mailer.IEmailService,
	hub *websocket.Hub,
	log logger.ILogger,
) ITicketService {
	return &ticketService{
		uowFactory: uowFactory,
		sessions:   sessions,
		tickets:    tickets,
		manager:    manager,
		recorder:   recorder,
		mail:       mail,
		hub:        hub,
		logger:     log,
	}
}

func (s *ticketService) List(ctx context.Context, req *dto.ListTicketsRequest) ([]*dto.TicketResponse, error) {
	specs := []specification.Specification{
		specification.OrderBy{Column: "created_at", Desc: true},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Priority != "" {
		specs = append(specs, specification.ByPriority{Priority: req.Priority})
	}
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs, specification.Limit{Limit: limit, Offset: req.Offset})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	found, err := uow.TicketRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TicketResponse, 0, len(found))
	for _, t := range found {
		res = append(res, ticketToResponse(t))
	}
	return res, nil
}

func (s *ticketService) Show(ctx context.Context, protocol string) (*dto.TicketResponse, error) {
	found, err := s.tickets.FindByProtocol(ctx, protocol)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "ticket not found")
	}
	return ticketToResponse(found), nil
}

func (s *ticketService) Assign(ctx context.Context, protocol string, req *dto.AssignTicketRequest) (*dto.TicketResponse, error) {
	assigned, err := s.tickets.Assign(ctx, protocol, req.Handler)
	if err != nil {
		return nil, err
	}
	if assigned == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "ticket not found")
	}
	return ticketToResponse(assigned), nil
}

// Resolve closes the ticket, moves the session to resolved, and records the
// outcome as a learning sample. Retried deliveries are safe: only the first
// resolution records a sample.
func (s *ticketService) Resolve(ctx context.Context, protocol string, req *dto.ResolveTicketRequest) (*dto.TicketResponse, error) {
	resolved, changed, err := s.tickets.Resolve(ctx, protocol, req.Resolution, req.SatisfactionScore)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "ticket not found")
	}
	if !changed {
		return ticketToResponse(resolved), nil
	}

	session := s.resolveSession(ctx, resolved.SessionId)

	s.recordOutcome(resolved, session, req)

	if s.hub != nil {
		s.hub.Broadcast(events.BaseEvent{
			Type: constant.EventTicketResolved,
			Data: map[string]interface{}{
				"protocol":   resolved.Protocol,
				"successful": req.Successful,
			},
			OccurredAt: time.Now(),
		})
	}

	return ticketToResponse(resolved), nil
}

// resolveSession applies the escalated -> resolved transition on the owning
// session. A missing session only costs state hygiene, not the resolution.
func (s *ticketService) resolveSession(ctx context.Context, sessionId uuid.UUID) *entity.Session {
	s.sessions.Acquire(sessionId.String())
	defer s.sessions.Release(sessionId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, found := s.sessions.Get(sessionId.String())
	if !found {
		stored, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
		if err != nil || stored == nil {
			s.logger.Warn("Ticket", "Session missing during resolution", map[string]interface{}{
				"session_id": sessionId,
			})
			return nil
		}
		session = stored
	}

	s.manager.MarkResolved(session)
	s.sessions.Save(session)
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		s.logger.Warn("Ticket", "Failed to persist resolved session", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
	return session
}

func (s *ticketService) recordOutcome(t *entity.Ticket, session *entity.Session, req *dto.ResolveTicketRequest) {
	if s.recorder == nil {
		return
	}

	outcome := entity.OutcomeFailure
	if req.Successful {
		outcome = entity.OutcomeSuccess
	}

	snapshot := entity.ContextSnapshot{Domain: ""}
	if session != nil {
		snapshot = session.Snapshot()
	}

	resolutionTime := time.Duration(0)
	if t.ResolvedAt != nil {
		resolutionTime = t.ResolvedAt.Sub(t.CreatedAt)
	}

	s.recorder.Record(&entity.PatternRecord{
		Id:                uuid.New(),
		ContextSnapshot:   snapshot,
		PrimaryTrigger:    t.PrimaryTrigger,
		TriggerSet:        t.TriggerSet,
		TargetHandler:     t.AssignedHandler,
		Outcome:           outcome,
		ResolutionTime:    resolutionTime,
		SatisfactionScore: req.SatisfactionScore,
		CreatedAt:         time.Now(),
	})
}

// SweepSLA flags newly breached tickets and raises ops alerts for each.
func (s *ticketService) SweepSLA(ctx context.Context) (int, error) {
	breached, err := s.tickets.SweepSLA(ctx)
	if err != nil {
		return 0, err
	}

	for _, t := range breached {
		if s.mail != nil {
			if err := s.mail.SendSLABreachAlert(t.Protocol, string(t.Priority), t.SLADeadline); err != nil {
				s.logger.Warn("Ticket", "SLA breach alert failed", map[string]interface{}{
					"protocol": t.Protocol,
					"error":    err.Error(),
				})
			}
		}
		if s.hub != nil {
			s.hub.Broadcast(events.BaseEvent{
				Type: constant.EventSLABreached,
				Data: map[string]interface{}{
					"protocol": t.Protocol,
					"priority": string(t.Priority),
					"deadline": t.SLADeadline,
				},
				OccurredAt: time.Now(),
			})
		}
	}

	return len(breached), nil
}

func (s *ticketService) BuildSLAReport(ctx context.Context, from, to time.Time) ([]byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tickets, err := uow.TicketRepository().FindAll(ctx,
		specification.CreatedBetween{From: from, To: to},
		specification.OrderBy{Column: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	return report.BuildSLAReport(tickets, from, to)
}

func ticketToResponse(t *entity.Ticket) *dto.TicketResponse {
	triggers := make([]string, 0, len(t.TriggerSet))
	for _, tr := range t.TriggerSet {
		triggers = append(triggers, string(tr))
	}
	return &dto.TicketResponse{
		Id:                t.Id,
		Protocol:          t.Protocol,
		CustomerId:        t.CustomerId,
		SessionId:         t.SessionId,
		IssueDescription:  t.IssueDescription,
		Type:              string(t.Type),
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		PrimaryTrigger:    string(t.PrimaryTrigger),
		TriggerSet:        triggers,
		AssignedHandler:   t.AssignedHandler,
		ResolutionOutcome: t.ResolutionOutcome,
		CreatedAt:         t.CreatedAt,
		SLADeadline:       t.SLADeadline,
		ResolvedAt:        t.ResolvedAt,
	}
}

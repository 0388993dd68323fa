// Turn orchestration: one inbound customer message in, one routing/escalation
// outcome out. The pipeline is lock -> load -> extract -> route -> retrieve ->
// evaluate escalation -> persist, and every external failure inside it
// degrades instead of failing the turn.

package service

import (
	"context"
	"fmt"
	"time"

	"support-routing-be/internal/constant"
	"support-routing-be/internal/dto"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"
	"support-routing-be/internal/repository/memory"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/internal/repository/unitofwork"
	"support-routing-be/internal/websocket"
	"support-routing-be/pkg/escalation"
	"support-routing-be/pkg/events"
	"support-routing-be/pkg/knowledge"
	"support-routing-be/pkg/learning"
	"support-routing-be/pkg/routing"
	"support-routing-be/pkg/signal"
	"support-routing-be/pkg/ticket"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITurnService interface {
	ProcessTurn(ctx context.Context, req *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error)
	ReportFailure(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
}

type turnService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
	router     *routing.Engine
	manager    *escalation.Manager
	notifier   *escalation.Notifier
	tickets    *ticket.Manager
	knowledge  *knowledge.Store
	learner    *learning.Aggregator
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewTurnService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	router *routing.Engine,
	manager *escalation.Manager,
	notifier *escalation.Notifier,
	tickets *ticket.Manager,
	knowledgeStore *knowledge.Store,
	learner *learning.Aggregator,
	hub *websocket.Hub,
	log logger.ILogger,
) ITurnService {
	return &turnService{
		uowFactory: uowFactory,
		sessions:   sessions,
		router:     router,
		manager:    manager,
		notifier:   notifier,
		tickets:    tickets,
		knowledge:  knowledgeStore,
		learner:    learner,
		hub:        hub,
		logger:     log,
	}
}

func (s *turnService) ProcessTurn(ctx context.Context, req *dto.ProcessTurnRequest) (*dto.ProcessTurnResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: req.CustomerId})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "customer not found")
	}

	sessionId := req.SessionId
	if sessionId == uuid.Nil {
		sessionId = uuid.New()
	}

	// Single writer per session: a concurrent turn on the same session loses
	// immediately instead of queueing behind an unbounded lane.
	if !s.sessions.TryAcquire(sessionId.String()) {
		return nil, entity.ErrConcurrencyConflict
	}
	defer s.sessions.Release(sessionId.String())

	session, isNew, err := s.loadSession(ctx, uow, sessionId, req.CustomerId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.manager.BeginTurn(session, now)

	ext := signal.Extract(req.Message, session)
	s.manager.ApplyExtraction(session, ext)

	decision := s.route(session, req.Message, ext)

	res := &dto.ProcessTurnResponse{
		SessionId:   session.Id,
		IsAmbiguous: decision.IsAmbiguous,
	}
	for _, c := range decision.Candidates {
		res.Candidates = append(res.Candidates, dto.DomainCandidate{Domain: c.Domain, Confidence: c.Confidence})
	}

	if decision.ChosenDomain != "" {
		session.LastRoutedDomain = decision.ChosenDomain
		session.ClarificationAsked = false
		res.Domain = decision.ChosenDomain
		res.Reply = fmt.Sprintf(constant.ReplyRouted, decision.ChosenDomain)

		for _, chunk := range s.knowledge.Search(ctx, decision.ChosenDomain, req.Message) {
			res.KnowledgeChunks = append(res.KnowledgeChunks, dto.KnowledgeChunk{
				Topic:    chunk.Topic,
				Document: chunk.Document,
				Score:    chunk.Score,
			})
		}
	} else {
		// A near-empty message does not spend the clarification budget.
		if !decision.NeedsMoreInfo {
			session.ClarificationAsked = true
		}
		res.ClarificationQuestion = decision.ClarificationQuestion
		res.Reply = decision.ClarificationQuestion
	}

	if escDecision := s.manager.Evaluate(session, ext, customer.Vip); escDecision != nil {
		s.escalate(ctx, session, escDecision, req.Message, ext, res)
	}

	if err := s.persistSession(ctx, uow, session, isNew); err != nil {
		return nil, err
	}

	res.FrustrationLevel = session.FrustrationLevel
	res.EscalationState = string(session.EscalationState)
	return res, nil
}

// route runs the routing engine with the learner bias. The one-clarification
// budget: once a clarification has been asked for this issue, the next turn
// commits to the best candidate no matter how close the call is.
func (s *turnService) route(session *entity.Session, message string, ext signal.Extraction) routing.Decision {
	bias := routing.Bias{}
	if s.learner != nil {
		bias = s.learner.DomainBias(ext.KeywordHits)
	}
	return s.router.Route(message, ext.KeywordHits, session.LastRoutedDomain, bias, session.ClarificationAsked)
}

func (s *turnService) escalate(ctx context.Context, session *entity.Session, decision *escalation.Decision, message string, ext signal.Extraction, res *dto.ProcessTurnResponse) {
	snapshot := decision.Snapshot
	snapshot.KeywordSignature = ext.KeywordHits

	var opened *entity.Ticket
	operation := func() error {
		var err error
		opened, err = s.tickets.Open(ctx, ticket.OpenParams{
			CustomerId:       session.CustomerId,
			SessionId:        session.Id,
			IssueDescription: message,
			Domain:           session.LastRoutedDomain,
			PrimaryTrigger:   decision.Primary,
			TriggerSet:       decision.Triggers,
			AssignedHandler:  decision.TargetHandler,
		})
		return err
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx))
	if err != nil {
		// No ticket means no protocol to promise. Drop back to pending so the
		// next turn re-evaluates and retries.
		s.logger.Error("Turn", "Ticket creation failed after retries", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		session.EscalationState = entity.EscalationPending
		res.Reply = constant.ReplyDegraded
		return
	}

	session.ActiveProtocol = opened.Protocol

	evt := events.BaseEvent{
		Type: constant.EventSessionEscalated,
		Data: map[string]interface{}{
			"protocol":        opened.Protocol,
			"session_id":      session.Id.String(),
			"customer_id":     session.CustomerId.String(),
			"primary_trigger": string(decision.Primary),
			"priority":        string(opened.Priority),
			"domain":          session.LastRoutedDomain,
			"snapshot":        snapshot,
			"description":     message,
		},
		OccurredAt: time.Now(),
	}

	delivered := s.notifier.Notify(ctx, decision.TargetHandler, evt)
	if delivered != "" && delivered != opened.AssignedHandler {
		opened.AssignedHandler = delivered
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.TicketRepository().Update(ctx, opened); err != nil {
			s.logger.Warn("Turn", "Failed to persist fallback handler", map[string]interface{}{
				"protocol": opened.Protocol,
				"error":    err.Error(),
			})
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(events.BaseEvent{
			Type: constant.EventTicketCreated,
			Data: map[string]interface{}{
				"protocol": opened.Protocol,
				"priority": string(opened.Priority),
				"handler":  opened.AssignedHandler,
			},
			OccurredAt: time.Now(),
		})
	}

	res.Escalated = true
	res.Protocol = opened.Protocol
	res.HandlerQueue = opened.AssignedHandler
	res.Reply = fmt.Sprintf(constant.ReplyEscalated, opened.Protocol)
}

// ReportFailure bumps the failed-attempt counter after the caller determined
// the previous answer did not solve the problem.
func (s *turnService) ReportFailure(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	if !s.sessions.TryAcquire(sessionId.String()) {
		return nil, entity.ErrConcurrencyConflict
	}
	defer s.sessions.Release(sessionId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, isNew, err := s.loadSession(ctx, uow, sessionId, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if isNew {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	session.FailedAttemptCount++
	session.LastActivityAt = time.Now()

	if err := s.persistSession(ctx, uow, session, false); err != nil {
		return nil, err
	}

	return sessionToState(session), nil
}

// loadSession reads the hot copy, falls back to the durable copy, and lastly
// opens a fresh session.
func (s *turnService) loadSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, customerId uuid.UUID) (*entity.Session, bool, error) {
	if cached, found := s.sessions.Get(sessionId.String()); found {
		return cached, false, nil
	}

	stored, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, false, err
	}
	if stored != nil {
		s.sessions.Save(stored)
		return stored, false, nil
	}

	now := time.Now()
	session := &entity.Session{
		Id:              sessionId,
		CustomerId:      customerId,
		EscalationState: entity.EscalationNone,
		CreatedAt:       now,
		LastActivityAt:  now,
	}
	return session, true, nil
}

func (s *turnService) persistSession(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.Session, isNew bool) error {
	s.sessions.Save(session)

	if isNew {
		return uow.SessionRepository().Create(ctx, session)
	}
	return uow.SessionRepository().Update(ctx, session)
}

func sessionToState(session *entity.Session) *dto.SessionStateResponse {
	return &dto.SessionStateResponse{
		Id:                 session.Id,
		CustomerId:         session.CustomerId,
		InteractionCount:   session.InteractionCount,
		FrustrationLevel:   session.FrustrationLevel,
		FailedAttemptCount: session.FailedAttemptCount,
		EscalationState:    string(session.EscalationState),
		LastRoutedDomain:   session.LastRoutedDomain,
		ActiveProtocol:     session.ActiveProtocol,
		CreatedAt:          session.CreatedAt,
		LastActivityAt:     session.LastActivityAt,
	}
}

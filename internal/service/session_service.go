package service

import (
	"context"

	"support-routing-be/internal/dto"
	"support-routing-be/internal/repository/memory"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.SessionStateResponse, error)
	ListByCustomer(ctx context.Context, customerId uuid.UUID) ([]*dto.SessionStateResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, sessions *memory.SessionRepository) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		sessions:   sessions,
	}
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.SessionStateResponse, error) {
	if cached, found := s.sessions.Get(id.String()); found {
		return sessionToState(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return sessionToState(stored), nil
}

func (s *sessionService) ListByCustomer(ctx context.Context, customerId uuid.UUID) ([]*dto.SessionStateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	found, err := uow.SessionRepository().FindAll(ctx,
		specification.ByCustomerID{CustomerID: customerId},
		specification.OrderBy{Column: "last_activity_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionStateResponse, 0, len(found))
	for _, session := range found {
		res = append(res, sessionToState(session))
	}
	return res, nil
}

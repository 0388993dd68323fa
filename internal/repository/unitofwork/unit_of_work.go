package unitofwork

import (
	"context"

	"support-routing-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	TicketRepository() contract.TicketRepository
	PatternRecordRepository() contract.PatternRecordRepository
	CustomerRepository() contract.CustomerRepository
	OperatorRepository() contract.OperatorRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}

package service

import (
	"context"
	"time"

	"support-routing-be/internal/pkg/logger"
)

// SLASweeper periodically flags tickets that missed their deadline.
type SLASweeper struct {
	tickets  ITicketService
	interval time.Duration
	logger   logger.ILogger
}

func NewSLASweeper(tickets ITicketService, interval time.Duration, log logger.ILogger) *SLASweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SLASweeper{
		tickets:  tickets,
		interval: interval,
		logger:   log,
	}
}

func (s *SLASweeper) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := s.tickets.SweepSLA(ctx)
				if err != nil {
					s.logger.Error("SLA", "Sweep failed", map[string]interface{}{
						"error": err.Error(),
					})
					continue
				}
				if count > 0 {
					s.logger.Warn("SLA", "Sweep flagged breaches", map[string]interface{}{
						"count": count,
					})
				}
			}
		}
	}()
}

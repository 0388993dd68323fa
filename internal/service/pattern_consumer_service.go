package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"support-routing-be/internal/dto"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/repository/unitofwork"
	"support-routing-be/pkg/learning"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPatternConsumerService interface {
	Consume(ctx context.Context) error
}

// patternConsumerService drains the in-process bus and persists pattern
// records. Aggregates are invalidated after every successful write so the
// next recommendation sees the new sample.
type patternConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	aggregator *learning.Aggregator
}

func NewPatternConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	aggregator *learning.Aggregator,
) IPatternConsumerService {
	return &patternConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (cs *patternConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *patternConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.RecordPatternMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal pattern record: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	record := &entity.PatternRecord{
		Id:                payload.RecordId,
		ContextSnapshot:   payload.ContextSnapshot,
		PrimaryTrigger:    payload.PrimaryTrigger,
		TriggerSet:        payload.TriggerSet,
		TargetHandler:     payload.TargetHandler,
		Outcome:           payload.Outcome,
		ResolutionTime:    time.Duration(payload.ResolutionTimeMs) * time.Millisecond,
		SatisfactionScore: payload.SatisfactionScore,
		CreatedAt:         payload.CreatedAt,
	}

	if err := uow.PatternRecordRepository().Create(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to persist pattern record %s: %v", payload.RecordId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if cs.aggregator != nil {
		cs.aggregator.Invalidate()
	}

	msg.Ack()
}

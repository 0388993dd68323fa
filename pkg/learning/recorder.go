package learning

import (
	"encoding/json"

	"support-routing-be/internal/dto"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Recorder hands completed escalation outcomes to the in-process bus.
// Recording is fire-and-forget: a lost record costs one learning sample,
// never a customer response.
type Recorder struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewRecorder(publisher message.Publisher, topic string, log logger.ILogger) *Recorder {
	return &Recorder{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

// Record publishes one pattern record message.
func (r *Recorder) Record(record *entity.PatternRecord) {
	payload := dto.RecordPatternMessage{
		RecordId:          record.Id,
		ContextSnapshot:   record.ContextSnapshot,
		PrimaryTrigger:    record.PrimaryTrigger,
		TriggerSet:        record.TriggerSet,
		TargetHandler:     record.TargetHandler,
		Outcome:           record.Outcome,
		ResolutionTimeMs:  record.ResolutionTime.Milliseconds(),
		SatisfactionScore: record.SatisfactionScore,
		CreatedAt:         record.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Learning", "Failed to marshal pattern record", map[string]interface{}{
			"record_id": record.Id,
			"error":     err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := r.publisher.Publish(r.topic, msg); err != nil {
		r.logger.Error("Learning", "Failed to publish pattern record", map[string]interface{}{
			"record_id": record.Id,
			"error":     err.Error(),
		})
	}
}

package kafka

import (
	"context"

	sdsapp "github.com/turtacn/ChemSDS/internal/application/sds"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// publisher adapts the Producer to the application's EventPublisher port.
type publisher struct {
	producer *Producer
}

// NewEventPublisher wires the producer into the generation pipeline.
func NewEventPublisher(producer *Producer) sdsapp.EventPublisher {
	return &publisher{producer: producer}
}

func (p *publisher) PublishGenerated(ctx context.Context, rec sdstypes.DocumentRecord) error {
	event := NewDocumentGeneratedEvent(rec)
	data, err := event.Encode()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, TopicDocumentGenerated, []byte(rec.StructureKey), data)
}

//Personal.AI order the ending

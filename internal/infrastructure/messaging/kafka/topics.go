// Package kafka publishes and consumes SDS generation events.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/turtacn/ChemSDS/pkg/errors"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

// TopicDocumentGenerated carries one event per successful generation,
// keyed by structure key so all events for one compound land on the same
// partition.
const TopicDocumentGenerated = "chemsds.sds.generated"

// EventDocumentGenerated is the wire payload for a generated document.
type EventDocumentGenerated struct {
	DocumentID   string    `json:"document_id"`
	StructureKey string    `json:"structure_key"`
	SMILES       string    `json:"smiles"`
	Formula      string    `json:"formula"`
	Name         string    `json:"name"`
	Complete     bool      `json:"complete"`
	GeneratedAt  time.Time `json:"generated_at"`
	EmittedAt    time.Time `json:"emitted_at"`
}

// NewDocumentGeneratedEvent maps a history record onto the wire event.
func NewDocumentGeneratedEvent(rec sdstypes.DocumentRecord) EventDocumentGenerated {
	return EventDocumentGenerated{
		DocumentID:   string(rec.ID),
		StructureKey: rec.StructureKey,
		SMILES:       rec.SMILES,
		Formula:      rec.Formula,
		Name:         rec.Name,
		Complete:     rec.Complete,
		GeneratedAt:  time.Time(rec.GeneratedAt),
		EmittedAt:    time.Now().UTC(),
	}
}

// Encode serialises the event for the wire.
func (e EventDocumentGenerated) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode event")
	}
	return data, nil
}

// DecodeDocumentGenerated parses an event payload.
func DecodeDocumentGenerated(data []byte) (EventDocumentGenerated, error) {
	var e EventDocumentGenerated
	if err := json.Unmarshal(data, &e); err != nil {
		return EventDocumentGenerated{}, errors.Wrap(err, errors.ErrCodeSerialization,
			"failed to decode event")
	}
	return e, nil
}

//Personal.AI order the ending

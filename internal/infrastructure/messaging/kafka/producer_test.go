package kafka

import (
	"context"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemSDS/pkg/errors"
	"github.com/turtacn/ChemSDS/pkg/types/common"
	sdstypes "github.com/turtacn/ChemSDS/pkg/types/sds"
)

type writerStub struct {
	mu       sync.Mutex
	messages []kafkago.Message
	writeErr error
	closed   bool
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr != nil {
		return w.writeErr
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *writerStub) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func newTestProducer(writer writerInterface) *Producer {
	cfg := ProducerConfig{Brokers: []string{"localhost:9092"}}
	applyProducerDefaults(&cfg)
	return &Producer{writer: writer, config: cfg, logger: logging.NewNopLogger()}
}

func TestProducer_Publish(t *testing.T) {
	writer := &writerStub{}
	producer := newTestProducer(writer)

	err := producer.Publish(context.Background(), TopicDocumentGenerated,
		[]byte("ABCDEFGHIJKLMN-OPQRSTUVSA-N"), []byte(`{"formula":"C2H6O"}`))
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, TopicDocumentGenerated, msg.Topic)
	assert.Equal(t, "ABCDEFGHIJKLMN-OPQRSTUVSA-N", string(msg.Key))
	assert.Equal(t, int64(1), producer.Sent())
	assert.Equal(t, int64(0), producer.Failed())
}

func TestProducer_Publish_Validation(t *testing.T) {
	producer := newTestProducer(&writerStub{})

	tests := []struct {
		name  string
		topic string
		value []byte
	}{
		{"empty topic", "", []byte("v")},
		{"empty value", TopicDocumentGenerated, nil},
		{"oversized value", TopicDocumentGenerated, make([]byte, (1<<20)+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := producer.Publish(context.Background(), tt.topic, nil, tt.value)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
		})
	}
}

func TestProducer_Publish_WriteFailure(t *testing.T) {
	writer := &writerStub{writeErr: assert.AnError}
	producer := newTestProducer(writer)

	err := producer.Publish(context.Background(), TopicDocumentGenerated, nil, []byte("v"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMessageQueueError))
	assert.Equal(t, int64(1), producer.Failed())
}

func TestProducer_Close(t *testing.T) {
	writer := &writerStub{}
	producer := newTestProducer(writer)

	require.NoError(t, producer.Close())
	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)

	err := producer.Publish(context.Background(), TopicDocumentGenerated, nil, []byte("v"))
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(ProducerConfig{}, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestEventDocumentGenerated_RoundTrip(t *testing.T) {
	generatedAt := common.Timestamp(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	rec := sdstypes.DocumentRecord{
		ID:           common.ID("doc-1"),
		StructureKey: "LFQSCWFLJHTTHZ-UHFFFAOYSA-N",
		SMILES:       "CCO",
		Formula:      "C2H6O",
		Name:         "ethanol",
		Complete:     true,
		GeneratedAt:  generatedAt,
	}

	event := NewDocumentGeneratedEvent(rec)
	data, err := event.Encode()
	require.NoError(t, err)

	decoded, err := DecodeDocumentGenerated(data)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", decoded.DocumentID)
	assert.Equal(t, rec.StructureKey, decoded.StructureKey)
	assert.Equal(t, "C2H6O", decoded.Formula)
	assert.True(t, decoded.Complete)
	assert.True(t, decoded.GeneratedAt.Equal(time.Time(generatedAt)))
	assert.False(t, decoded.EmittedAt.IsZero())
}

func TestDecodeDocumentGenerated_Invalid(t *testing.T) {
	_, err := DecodeDocumentGenerated([]byte("not json"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSerialization))
}

func TestEventPublisher_PublishGenerated(t *testing.T) {
	writer := &writerStub{}
	pub := NewEventPublisher(newTestProducer(writer))

	rec := sdstypes.DocumentRecord{
		ID:           common.ID("doc-2"),
		StructureKey: "UHOVQNZJYSORNB-UHFFFAOYSA-N",
		SMILES:       "c1ccccc1",
		Formula:      "C6H6",
		Complete:     false,
		GeneratedAt:  common.NewTimestamp(),
	}
	require.NoError(t, pub.PublishGenerated(context.Background(), rec))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, TopicDocumentGenerated, msg.Topic)
	assert.Equal(t, rec.StructureKey, string(msg.Key))

	event, err := DecodeDocumentGenerated(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, "doc-2", event.DocumentID)
	assert.Equal(t, "C6H6", event.Formula)
}

//Personal.AI order the ending

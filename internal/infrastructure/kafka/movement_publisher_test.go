package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testEvent() entity.MovementEvent {
	from := "area-a"
	return entity.MovementEvent{
		EventID:        "ev-1",
		Type:           entity.MovementEventStatusChanged,
		MovementID:     "mov-1",
		ProductID:      "prod-1",
		FromAreaID:     &from,
		Quantity:       24,
		Status:         entity.MovementCompleted,
		PreviousStatus: entity.MovementPending,
		Applied:        true,
		OccurredAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMovementPublisher_ClaveYPayload(t *testing.T) {
	w := &fakeWriter{}
	p := newMovementPublisher(w)

	require.NoError(t, p.Publish(context.Background(), testEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "mov-1", string(msg.Key), "la clave debe ser el id del movimiento")
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, entity.MovementEventStatusChanged, string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "pending", body["previous_status"])
	assert.Equal(t, float64(24), body["quantity"])
	assert.Nil(t, body["to_area_id"])
}

func TestMovementPublisher_ErrorDelWriter(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := newMovementPublisher(w)

	err := p.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, w.err)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

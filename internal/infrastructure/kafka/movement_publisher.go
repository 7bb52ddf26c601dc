// Package kafka publica los eventos de movimientos en un topic de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

var _ ports.MovementEventPublisher = (*MovementPublisher)(nil)

// messageWriter subconjunto de *kafka.Writer que usa el publicador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MovementPublisher escribe cada evento como JSON con el id del movimiento como clave,
// así todos los eventos de un movimiento caen en la misma partición y conservan el orden.
type MovementPublisher struct {
	w       messageWriter
	timeout time.Duration
}

// NewMovementPublisher crea el writer para brokers/topic.
func NewMovementPublisher(brokers []string, topic string) *MovementPublisher {
	return newMovementPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		BatchSize:              100,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newMovementPublisher(w messageWriter) *MovementPublisher {
	return &MovementPublisher{w: w, timeout: 5 * time.Second}
}

// Publish escribe el evento; el contexto del llamador se acota a p.timeout.
func (p *MovementPublisher) Publish(ctx context.Context, event entity.MovementEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s: %w", event.Type, err)
	}
	return nil
}

// Close vacía los mensajes pendientes y cierra el writer.
func (p *MovementPublisher) Close() error {
	return p.w.Close()
}

func encode(event entity.MovementEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar evento: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.MovementID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}

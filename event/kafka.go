package event

import (
	"context"
	"encoding/json"

	"github.com/Skyrin/go-dsbridge/e"
	glkafka "github.com/Skyrin/go-dsbridge/kafka"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	ECode090101 = e.Code0901 + "01"
	ECode090102 = e.Code0901 + "02"
	ECode090103 = e.Code0901 + "03"
	ECode090104 = e.Code0901 + "04"
)

// messageWriter the part of *kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes events as JSON messages to a topic. Messages are
// keyed by process name so the events of a process stay in order
type KafkaPublisher struct {
	conn   *glkafka.Connection
	writer messageWriter
}

// NewKafkaPublisher returns a publisher writing to the topic through the
// connection. The connection is closed with the publisher
func NewKafkaPublisher(conn *glkafka.Connection, topic string) (kp *KafkaPublisher, err error) {
	if topic == "" {
		return nil, e.NK(e.ErrConfiguration, ECode090101, "no events topic")
	}

	return &KafkaPublisher{
		conn:   conn,
		writer: conn.NewWriter(topic),
	}, nil
}

// Publish writes the event. An event without id is given one
func (kp *KafkaPublisher) Publish(ctx context.Context, ev *Event) (err error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return e.W(err, ECode090102)
	}

	msg := kafka.Message{
		Key:   []byte(ev.ProcessName),
		Value: b,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		return e.WK(err, e.ErrTransport, ECode090103, "failed to publish event")
	}

	return nil
}

// Close flushes the writer and closes the connection
func (kp *KafkaPublisher) Close() (err error) {
	if err := kp.writer.Close(); err != nil {
		return e.W(err, ECode090104)
	}
	if kp.conn != nil {
		return kp.conn.Close()
	}

	return nil
}

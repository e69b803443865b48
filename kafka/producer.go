package kafka

import (
	"context"
	"log"

	"github.com/segmentio/kafka-go"
)

// ProducerAPI is the publishing surface services depend on.
type ProducerAPI interface {
	Publish(topic string, message []byte) error
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("[KafkaProducer] initialized topic=%s brokers=%v", topic, brokers)
	return &Producer{writer: w, topic: topic}
}

func (p *Producer) Publish(topic string, message []byte) error {
	msg := kafka.Message{
		Value: message,
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Printf("[KafkaProducer] failed to publish topic=%s err=%v", p.topic, err)
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	log.Printf("[KafkaProducer] closing writer topic=%s", p.topic)
	return p.writer.Close()
}

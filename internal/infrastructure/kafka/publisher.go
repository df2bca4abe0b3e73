package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finbridge/broker-funding-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (k *KafkaPublisher) publish(msg domain.Message) error {
	return k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Time:  time.Now(),
	})
}

func (k *KafkaPublisher) PublishDeposit(event DepositEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.publish(domain.Message{Key: []byte(event.UserID), Value: msg})
}

func (k *KafkaPublisher) PublishWithdrawal(event WithdrawalEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.publish(domain.Message{Key: []byte(event.UserID), Value: msg})
}

package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"ordertracker/internal/entities"
	"ordertracker/internal/pkg/config"
	"ordertracker/pkg/logger"
)

// Producer синхронно отправляет пачки сообщений outbox.
// Ключ сообщения id заказа, поэтому события одного заказа попадают в одну партицию по порядку.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
}

func NewProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (*Producer, error) {
	saramaConfig, err := newBaseConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build sarama config: %w", err)
	}
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Net.MaxOpenRequests = 1

	brokers := ParseBrokers(cfg.Brokers)
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("component", "producer"),
	)

	if err := ping(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return NewProducerFromSarama(kafkaLog, producer), nil
}

func NewProducerFromSarama(log logger.Logger, producer sarama.SyncProducer) *Producer {
	return &Producer{
		log:      log,
		producer: producer,
	}
}

func (p *Producer) Send(ctx context.Context, messages []entities.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := make([]*sarama.ProducerMessage, 0, len(messages))
	for _, msg := range messages {
		batch = append(batch, &sarama.ProducerMessage{
			Topic: msg.Topic,
			Key:   sarama.StringEncoder(msg.Key),
			Value: sarama.ByteEncoder(msg.Payload),
		})
	}

	if err := p.producer.SendMessages(batch); err != nil {
		return fmt.Errorf("send %d messages: %w", len(batch), err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

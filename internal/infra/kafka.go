package infra

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Alturino/storefront/internal/log"
)

func SplitBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewKafkaWriter(c context.Context, brokers []string, topic string) *kafka.Writer {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewKafkaWriter").
		Str(log.KeyProcess, "initializing kafka writer").
		Strs("brokers", brokers).
		Str("topic", topic).
		Logger()

	logger.Info().Msg("initializing kafka writer")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	logger.Info().Msg("initialized kafka writer")
	return writer
}

func NewKafkaReader(c context.Context, brokers []string, topic, groupID string) *kafka.Reader {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewKafkaReader").
		Str(log.KeyProcess, "initializing kafka reader").
		Strs("brokers", brokers).
		Str("topic", topic).
		Str("groupId", groupID).
		Logger()

	logger.Info().Msg("initializing kafka reader")
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	logger.Info().Msg("initialized kafka reader")
	return reader
}

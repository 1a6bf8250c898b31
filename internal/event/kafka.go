package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderPlaced(c context.Context, e OrderPlaced) error {
	c, span := otel.Tracer.Start(c, "KafkaPublisher PublishOrderPlaced")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "KafkaPublisher PublishOrderPlaced").
		Str(log.KeyOrderID, e.OrderID.String()).
		Logger()

	e.InjectTrace(c)
	payload, err := json.Marshal(e)
	if err != nil {
		err = fmt.Errorf("failed marshaling orderPlaced event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "writing message").Logger()
	err = p.writer.WriteMessages(c, kafka.Message{
		Key:   []byte(e.OrderID.String()),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		err = fmt.Errorf("failed writing orderPlaced message with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("wrote orderPlaced message")

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type KafkaSubscriber struct {
	reader *kafka.Reader
}

func NewKafkaSubscriber(reader *kafka.Reader) *KafkaSubscriber {
	return &KafkaSubscriber{reader: reader}
}

func (s *KafkaSubscriber) Subscribe(c context.Context, handler Handler) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "KafkaSubscriber Subscribe").
		Logger()

	logger.Info().Msg("reading messages")
	for {
		msg, err := s.reader.ReadMessage(c)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || c.Err() != nil {
				logger.Info().Msg("stopped reading messages")
				return nil
			}
			err = fmt.Errorf("failed reading message with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		handle(c, msg.Value, handler)
	}
}

func (s *KafkaSubscriber) Close() error {
	return s.reader.Close()
}

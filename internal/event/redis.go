package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) PublishOrderPlaced(c context.Context, e OrderPlaced) error {
	c, span := otel.Tracer.Start(c, "RedisPublisher PublishOrderPlaced")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisPublisher PublishOrderPlaced").
		Str(log.KeyOrderID, e.OrderID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marshaling event").Logger()
	e.InjectTrace(c)
	payload, err := json.Marshal(e)
	if err != nil {
		err = fmt.Errorf("failed marshaling orderPlaced event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "publishing event").Logger()
	logger.Trace().Msg("publishing orderPlaced event")
	err = p.client.Publish(c, p.channel, payload).Err()
	if err != nil {
		err = fmt.Errorf("failed publishing orderPlaced event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("published orderPlaced event")

	return nil
}

func (p *RedisPublisher) Close() error {
	return nil
}

type RedisSubscriber struct {
	client  *redis.Client
	channel string
	pubsub  *redis.PubSub
}

func NewRedisSubscriber(client *redis.Client, channel string) *RedisSubscriber {
	return &RedisSubscriber{client: client, channel: channel}
}

func (s *RedisSubscriber) Subscribe(c context.Context, handler Handler) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "RedisSubscriber Subscribe").
		Str("channel", s.channel).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "subscribing").Logger()
	s.pubsub = s.client.Subscribe(c, s.channel)
	_, err := s.pubsub.Receive(c)
	if err != nil {
		err = fmt.Errorf("failed subscribing to channel=%s with error=%w", s.channel, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("subscribed")

	messages := s.pubsub.Channel()
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped subscribing")
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			handle(c, []byte(msg.Payload), handler)
		}
	}
}

func (s *RedisSubscriber) Close() error {
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}

func handle(c context.Context, payload []byte, handler Handler) {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "event handle").Logger()

	e := OrderPlaced{}
	err := json.Unmarshal(payload, &e)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling orderPlaced event with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	c, span := otel.Tracer.Start(e.ExtractTrace(c), "event HandleOrderPlaced")
	defer span.End()

	logger = logger.With().Str(log.KeyOrderID, e.OrderID.String()).Logger()
	err = handler(logger.WithContext(c), e)
	if err != nil {
		err = fmt.Errorf("failed handling orderPlaced event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
}

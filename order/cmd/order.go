package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/order/internal/controller"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/service"
)

func RunOrderService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunOrderService")
	defer span.End()

	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppOrderService)).
		With().
		Str(log.KeyAppName, constants.AppOrderService).
		Str(log.KeyTag, "main RunOrderService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppOrderService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppOrderService, cfg.Otel.Endpoint())
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized otel sdk")
	defer func() {
		if err := inOtel.ShutdownOtel(context.WithoutCancel(c), shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	logger.Info().Msg("initialized database")
	defer func() {
		db.Close()
		logger.Info().Msg("shutdown database connection")
	}()
	queries := repository.New(db)

	logger = logger.With().
		Str(log.KeyProcess, "initializing event publisher").
		Str("eventDriver", cfg.Event.Driver).
		Logger()
	logger.Info().Msg("initializing event publisher")
	c = logger.WithContext(c)
	var publisher event.Publisher
	switch cfg.Event.Driver {
	case config.EventDriverKafka:
		logger.Info().Str("brokers", strings.Join(cfg.Event.Brokers, ",")).Msg("publishing to kafka")
		publisher = event.NewKafkaPublisher(infra.NewKafkaWriter(c, cfg.Event.Brokers, cfg.Event.Topic))
	default:
		cache := infra.NewCacheClient(c, cfg.Cache)
		publisher = event.NewRedisPublisher(cache, cfg.Event.Topic)
		defer func() {
			if err := cache.Close(); err != nil {
				err = fmt.Errorf("failed closing cache with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
			}
		}()
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			err = fmt.Errorf("failed closing event publisher with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("closed event publisher")
	}()
	logger.Info().Msg("initialized event publisher")

	logger = logger.With().Str(log.KeyProcess, "initializing orderService").Logger()
	orderService := service.NewOrderService(db, queries, publisher)
	logger.Info().Msg("initialized orderService")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	router := infra.NewRouter(constants.AppOrderService, prometheus.DefaultRegisterer)
	controller.AttachOrderController(router, orderService, cfg.Application.SecretKey)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "running server").Logger()
	c = logger.WithContext(c)
	server := infra.NewServer(c, cfg.Application.Address(), router)
	if err = infra.Serve(c, server); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("server completely shutdown")
}

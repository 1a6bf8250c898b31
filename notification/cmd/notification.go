package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/notification/internal/otel"
	"github.com/Alturino/storefront/notification/internal/service"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/client"
)

func RunNotificationService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunNotificationService")
	defer span.End()

	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppNotificationService)).
		With().
		Str(log.KeyAppName, constants.AppNotificationService).
		Str(log.KeyTag, "main RunNotificationService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppNotificationService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppNotificationService, cfg.Otel.Endpoint())
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

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed closing cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	logger = logger.With().Str(log.KeyProcess, "initializing catalog").Logger()
	logger.Info().Msg("initializing catalog")
	var productCatalog service.Catalog
	if cfg.Catalog.BaseURL != "" {
		logger.Info().Str(log.KeyRequestURL, cfg.Catalog.BaseURL).Msg("using remote catalog")
		productCatalog = client.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	} else {
		db := infra.NewDatabaseClient(c, cfg.Database)
		defer func() {
			db.Close()
			logger.Info().Msg("shutdown database connection")
		}()
		productCatalog = catalog.NewReader(repository.New(db), cache, cfg.Cache.TTL)
	}
	logger.Info().Msg("initialized catalog")

	notifier := service.NewNotifier(productCatalog, constants.AppNotificationService, prometheus.DefaultRegisterer)

	logger = logger.With().
		Str(log.KeyProcess, "initializing event subscriber").
		Str("eventDriver", cfg.Event.Driver).
		Logger()
	c = logger.WithContext(c)
	var subscriber event.Subscriber
	switch cfg.Event.Driver {
	case config.EventDriverKafka:
		logger.Info().Str("brokers", strings.Join(cfg.Event.Brokers, ",")).Msg("subscribing to kafka")
		subscriber = event.NewKafkaSubscriber(infra.NewKafkaReader(c, cfg.Event.Brokers, cfg.Event.Topic, cfg.Event.GroupID))
	default:
		subscriber = event.NewRedisSubscriber(cache, cfg.Event.Topic)
	}
	defer func() {
		if err := subscriber.Close(); err != nil {
			err = fmt.Errorf("failed closing event subscriber with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()
	logger.Info().Msg("initialized event subscriber")

	router := infra.NewRouter(constants.AppNotificationService, prometheus.DefaultRegisterer)
	server := infra.NewServer(c, cfg.Application.Address(), router)

	logger = logger.With().Str(log.KeyProcess, "running notification service").Logger()
	c = logger.WithContext(c)
	group, groupCtx := errgroup.WithContext(c)
	group.Go(func() error {
		return subscriber.Subscribe(groupCtx, notifier.HandleOrderPlaced)
	})
	group.Go(func() error {
		return infra.Serve(groupCtx, server)
	})
	if err = group.Wait(); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("notification service completely shutdown")
}

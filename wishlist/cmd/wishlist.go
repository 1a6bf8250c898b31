package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Alturino/storefront/wishlist/internal/controller"
	"github.com/Alturino/storefront/wishlist/internal/otel"
	"github.com/Alturino/storefront/wishlist/internal/service"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/client"
)

func RunWishlistService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunWishlistService")
	defer span.End()

	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", constants.AppWishlistService)).
		With().
		Str(log.KeyAppName, constants.AppWishlistService).
		Str(log.KeyTag, "main RunWishlistService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppWishlistService)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	shutdownFuncs, err := inOtel.InitOtelSdk(c, constants.AppWishlistService, cfg.Otel.Endpoint())
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

	logger = logger.With().Str(log.KeyProcess, "initializing catalog").Logger()
	logger.Info().Msg("initializing catalog")
	var productCatalog service.Catalog
	if cfg.Catalog.BaseURL != "" {
		logger.Info().Str(log.KeyRequestURL, cfg.Catalog.BaseURL).Msg("using remote catalog")
		productCatalog = client.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	} else {
		cache := infra.NewCacheClient(c, cfg.Cache)
		defer func() {
			if err := cache.Close(); err != nil {
				err = fmt.Errorf("failed closing cache with error=%w", err)
				logger.Error().Err(err).Msg(err.Error())
			}
		}()
		productCatalog = catalog.NewReader(queries, cache, cfg.Cache.TTL)
	}
	logger.Info().Msg("initialized catalog")

	logger = logger.With().Str(log.KeyProcess, "initializing wishlistService").Logger()
	logger.Info().Msg("initializing wishlistService")
	wishlistService := service.NewWishlistService(db, queries, productCatalog)
	logger.Info().Msg("initialized wishlistService")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	router := infra.NewRouter(constants.AppWishlistService, prometheus.DefaultRegisterer)
	controller.AttachWishlistController(router, wishlistService, cfg.Application.SecretKey)
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

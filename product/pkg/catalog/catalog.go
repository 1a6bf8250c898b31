package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/response"
)

const KeyProducts = "products:"

var tracer = otel.Tracer(constants.AppProductService)

// Reader looks products up in the database through a redis read-through cache. A nil cache
// disables caching.
type Reader struct {
	queries *repository.Queries
	cache   *redis.Client
	ttl     time.Duration
}

func NewReader(queries *repository.Queries, cache *redis.Client, ttl time.Duration) *Reader {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Reader{queries: queries, cache: cache, ttl: ttl}
}

func CacheKey(id uuid.UUID) string {
	return KeyProducts + id.String()
}

func (r *Reader) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := tracer.Start(
		c,
		"CatalogReader FindProductById",
		trace.WithAttributes(attribute.String(log.KeyProductID, id.String())),
	)
	defer span.End()

	cacheKey := CacheKey(id)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogReader FindProductById").
		Str(log.KeyProductID, id.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	if product, ok := r.fromCache(logger.WithContext(c), cacheKey); ok {
		span.AddEvent("found product in cache")
		return product, nil
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	row, err := r.queries.FindProductById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding product with error=%w", inErrors.NewNotFoundError("product", id.String()))
		} else {
			err = fmt.Errorf("failed finding product with error=%w", inErrors.NewDependencyError("database", err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := row.Response()
	logger.Trace().Msg("found product in database")

	r.Store(logger.WithContext(c), product)
	return product, nil
}

func (r *Reader) fromCache(c context.Context, cacheKey string) (response.Product, bool) {
	if r.cache == nil {
		return response.Product{}, false
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "finding product in cache").Logger()

	jsonCache, err := r.cache.Get(c, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn().Err(err).Msgf("failed getting product from cache with error=%s", err.Error())
		}
		return response.Product{}, false
	}

	product := response.Product{}
	if err = json.Unmarshal([]byte(jsonCache), &product); err != nil {
		logger.Warn().Err(err).Msgf("failed unmarshaling cached product with error=%s", err.Error())
		return response.Product{}, false
	}
	logger.Trace().Msg("found product in cache")
	return product, true
}

// Store primes the cache. Failures are logged only.
func (r *Reader) Store(c context.Context, product response.Product) {
	if r.cache == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "inserting product to cache").Logger()

	payload, err := json.Marshal(product)
	if err != nil {
		logger.Warn().Err(err).Msgf("failed marshaling product with error=%s", err.Error())
		return
	}
	if err = r.cache.Set(c, CacheKey(product.ID), payload, r.ttl).Err(); err != nil {
		logger.Warn().Err(err).Msgf("failed inserting product to cache with error=%s", err.Error())
		return
	}
	logger.Trace().Msg("inserted product to cache")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/pkg/catalog"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

const defaultLimit = 20

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	reader  *catalog.Reader
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	ttl time.Duration,
) *ProductService {
	return &ProductService{
		pool:    pool,
		queries: queries,
		reader:  catalog.NewReader(queries, cache, ttl),
	}
}

func (svc *ProductService) FindProductById(c context.Context, id uuid.UUID) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"ProductService FindProductById",
		trace.WithAttributes(attribute.String(log.KeyProductID, id.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	product, err := svc.reader.FindProductById(logger.WithContext(c), id)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product")

	return product, nil
}

func (svc *ProductService) FindProducts(c context.Context, filter request.FindProducts) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Any(log.KeyFilter, filter).
		Logger()

	limit := filter.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	params := repository.FindProductsParams{
		Category:    pgtype.Text{String: filter.Category, Valid: filter.Category != ""},
		Subcategory: pgtype.Text{String: filter.Subcategory, Valid: filter.Subcategory != ""},
		VendorID:    uuid.NullUUID{UUID: filter.VendorID, Valid: filter.VendorID != uuid.Nil},
		LimitCount:  limit,
		OffsetCount: filter.Offset,
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Trace().Msg("finding products")
	span.AddEvent("finding products")
	rows, err := svc.queries.FindProducts(c, params)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", inErrors.NewDependencyError("database", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	products := make([]response.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.Response())
	}
	span.AddEvent("found products")
	logger.Info().Int("count", len(products)).Msg("found products")

	return products, nil
}

// InsertProduct lists a product under the vendor owned by vendorUserId.
func (svc *ProductService) InsertProduct(
	c context.Context,
	vendorUserId uuid.UUID,
	param request.InsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"ProductService InsertProduct",
		trace.WithAttributes(attribute.String(log.KeyUserID, vendorUserId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Str(log.KeyUserID, vendorUserId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing price").Logger()
	price, err := decimal.NewFromString(param.Price)
	if err != nil || price.IsNegative() || !price.Equal(price.Truncate(0)) {
		err = fmt.Errorf(
			"failed parsing price with error=%w",
			inErrors.NewValidationError("price", "price must be a non-negative whole amount"),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding vendor").Logger()
	logger.Trace().Msg("finding vendor")
	vendor, err := svc.queries.FindVendorByUserId(c, vendorUserId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding vendor with error=%w", inErrors.NewNotFoundError("vendor", vendorUserId.String()))
		} else {
			err = fmt.Errorf("failed finding vendor with error=%w", inErrors.NewDependencyError("database", err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Str(log.KeyVendorID, vendor.ID.String()).Logger()
	logger.Trace().Msg("found vendor")

	sizes := param.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	colors := param.Colors
	if colors == nil {
		colors = []string{}
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Trace().Msg("inserting product")
	span.AddEvent("inserting product")
	row, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		VendorID:    vendor.ID,
		Name:        param.Name,
		Category:    param.Category,
		Subcategory: param.Subcategory,
		Price:       repository.NumericFromDecimal(price),
		Sizes:       sizes,
		Colors:      colors,
		Description: param.Description,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", inErrors.NewDependencyError("database", err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := row.Response()
	logger = logger.With().Str(log.KeyProductID, product.ID.String()).Logger()
	span.AddEvent("inserted product")
	logger.Info().Msg("inserted product")

	svc.reader.Store(logger.WithContext(c), product)
	return product, nil
}

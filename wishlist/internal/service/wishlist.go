package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
	"github.com/Alturino/storefront/wishlist/internal/otel"
	"github.com/Alturino/storefront/wishlist/pkg/request"
	"github.com/Alturino/storefront/wishlist/pkg/response"
)

type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (productResponse.Product, error)
}

type WishlistService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	catalog Catalog
}

func NewWishlistService(pool *pgxpool.Pool, queries *repository.Queries, catalog Catalog) *WishlistService {
	return &WishlistService{pool: pool, queries: queries, catalog: catalog}
}

func dependencyError(err error) error {
	return inErrors.NewDependencyError("database", err)
}

// InsertWishlistItem adds a product to the user's wishlist. Adding a product that is already
// wishlisted leaves the wishlist unchanged.
func (svc *WishlistService) InsertWishlistItem(
	c context.Context,
	userId uuid.UUID,
	param request.InsertWishlistItem,
) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(
		c,
		"WishlistService InsertWishlistItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, param.ProductId.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService InsertWishlistItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	product, err := svc.catalog.FindProductById(logger.WithContext(c), param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "locking wishlist").Logger()
	logger.Trace().Msg("locking wishlist")
	wishlist, err := queries.UpsertWishlistByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed locking wishlist with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger = logger.With().Str(log.KeyWishlistID, wishlist.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting wishlist item").Logger()
	logger.Trace().Msg("inserting wishlist item")
	item, err := queries.InsertWishlistItem(c, repository.InsertWishlistItemParams{
		WishlistID: wishlist.ID,
		ProductID:  product.ID,
		UnitPrice:  product.Price,
	})
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		logger.Info().Msg("product already wishlisted")
	case err != nil:
		err = fmt.Errorf("failed inserting wishlist item with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	default:
		logger.Trace().Msg("inserted wishlist item")
		wishlist, err = queries.AddWishlistTotalPrice(c, repository.AddWishlistTotalPriceParams{
			Delta: item.UnitPrice,
			ID:    wishlist.ID,
		})
		if err != nil {
			err = fmt.Errorf("failed applying wishlist total delta with error=%w", dependencyError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Wishlist{}, err
		}
	}

	result, err := svc.readBack(logger.WithContext(c), queries, wishlist)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Wishlist{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger.Info().Int64(log.KeyAmount, result.TotalPrice).Msg("inserted wishlist item")

	return result, nil
}

func (svc *WishlistService) RemoveWishlistItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(
		c,
		"WishlistService RemoveWishlistItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, productId.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService RemoveWishlistItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	notFound := inErrors.NewNotFoundError("wishlist item", productId.String())

	logger = logger.With().Str(log.KeyProcess, "locking wishlist").Logger()
	logger.Trace().Msg("locking wishlist")
	wishlist, err := queries.FindWishlistByUserIdForUpdate(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed locking wishlist with error=%w", notFound)
		} else {
			err = fmt.Errorf("failed locking wishlist with error=%w", dependencyError(err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger = logger.With().Str(log.KeyWishlistID, wishlist.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting wishlist item").Logger()
	logger.Trace().Msg("deleting wishlist item")
	deleted, err := queries.DeleteWishlistItemByProductId(c, repository.DeleteWishlistItemByProductIdParams{
		WishlistID: wishlist.ID,
		ProductID:  productId,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed deleting wishlist item with error=%w", notFound)
		} else {
			err = fmt.Errorf("failed deleting wishlist item with error=%w", dependencyError(err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	wishlist, err = queries.AddWishlistTotalPrice(c, repository.AddWishlistTotalPriceParams{
		Delta: -deleted.UnitPrice,
		ID:    wishlist.ID,
	})
	if err != nil {
		err = fmt.Errorf("failed applying wishlist total delta with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	result, err := svc.readBack(logger.WithContext(c), queries, wishlist)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Wishlist{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	logger.Info().Int64(log.KeyAmount, result.TotalPrice).Msg("removed wishlist item")

	return result, nil
}

// FindWishlistByUserId returns an empty wishlist with a zero total when the user has none.
func (svc *WishlistService) FindWishlistByUserId(c context.Context, userId uuid.UUID) (response.Wishlist, error) {
	c, span := otel.Tracer.Start(
		c,
		"WishlistService FindWishlistByUserId",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "WishlistService FindWishlistByUserId").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding wishlist").Logger()
	wishlist, err := svc.queries.FindWishlistByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("wishlist not found returning empty wishlist")
			return response.Wishlist{UserID: userId, WishlistItems: []response.WishlistItem{}}, nil
		}
		err = fmt.Errorf("failed finding wishlist with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}

	result, err := svc.readBack(logger.WithContext(c), svc.queries, wishlist)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Wishlist{}, err
	}
	logger.Info().Msg("found wishlist")

	return result, nil
}

func (svc *WishlistService) readBack(
	c context.Context,
	queries *repository.Queries,
	wishlist repository.Wishlist,
) (response.Wishlist, error) {
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "finding wishlist items").Logger()
	items, err := queries.FindWishlistItemsByWishlistId(c, wishlist.ID)
	if err != nil {
		err = fmt.Errorf("failed finding wishlist items with error=%w", dependencyError(err))
		logger.Error().Err(err).Msg(err.Error())
		return response.Wishlist{}, err
	}
	return wishlist.Response(items), nil
}

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

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/money"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/validate"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (productResponse.Product, error)
}

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	catalog Catalog
	config  config.Cart
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	catalog Catalog,
	cfg config.Cart,
) *CartService {
	return &CartService{pool: pool, queries: queries, catalog: catalog, config: cfg}
}

func dependencyError(err error) error {
	return inErrors.NewDependencyError("database", err)
}

func quantityError() error {
	return inErrors.NewValidationError("quantity", fmt.Sprintf("must be at most %d", request.MaxQuantity))
}

// lineTotal prices a line, reporting an amount outside the int64 range as a quantity error.
func lineTotal(unitPrice int64, quantity int32) (int64, error) {
	total, err := money.LineTotal(unitPrice, quantity)
	if err != nil {
		return 0, inErrors.NewValidationError("quantity", err.Error())
	}
	return total, nil
}

// InsertCartItem adds a product variant to the user's cart, creating the cart on first use.
// When the variant is already in the cart the quantity grows by one unit, or by the requested
// quantity when merge_requested_quantity is enabled.
func (svc *CartService) InsertCartItem(
	c context.Context,
	userId uuid.UUID,
	param request.InsertCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService InsertCartItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyProductID, param.ProductId.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService InsertCartItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, param.ProductId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	product, err := svc.catalog.FindProductById(logger.WithContext(c), param.ProductId)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Int64(log.KeyAmount, product.Price).Msg("found product")

	fields := map[string]string{}
	if !product.OffersSize(param.Size) {
		fields["size"] = fmt.Sprintf("size %s is not offered for this product", param.Size)
	}
	if !product.OffersColor(param.Color) {
		fields["color"] = fmt.Sprintf("color %s is not offered for this product", param.Color)
	}
	if len(fields) > 0 {
		err = fmt.Errorf("failed validating variant with error=%w", &inErrors.ValidationError{Fields: fields})
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "locking cart").Logger()
	logger.Trace().Msg("locking cart")
	cart, err := queries.UpsertCartByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed locking cart with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Trace().Msg("locked cart")

	logger = logger.With().Str(log.KeyProcess, "finding cart item variant").Logger()
	existing, err := queries.FindCartItemByVariant(c, repository.FindCartItemByVariantParams{
		CartID:    cart.ID,
		ProductID: product.ID,
		Size:      param.Size,
		Color:     param.Color,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding cart item variant with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	var delta int64
	if errors.Is(err, pgx.ErrNoRows) {
		logger = logger.With().Str(log.KeyProcess, "inserting cart item").Logger()
		logger.Trace().Msg("inserting cart item")
		item, err := queries.InsertCartItem(c, repository.InsertCartItemParams{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  param.Quantity,
			UnitPrice: product.Price,
			Size:      param.Size,
			Color:     param.Color,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting cart item with error=%w", dependencyError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		delta, err = lineTotal(item.UnitPrice, item.Quantity)
		if err != nil {
			err = fmt.Errorf("failed pricing cart item with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Trace().Str(log.KeyCartItemID, item.ID.String()).Msg("inserted cart item")
	} else {
		quantity := int32(1)
		if svc.config.MergeRequestedQuantity {
			quantity = param.Quantity
		}
		logger = logger.With().
			Str(log.KeyProcess, "increasing cart item quantity").
			Str(log.KeyCartItemID, existing.ID.String()).
			Int32(log.KeyQuantity, quantity).
			Logger()
		if existing.Quantity > request.MaxQuantity-quantity {
			err = fmt.Errorf("failed increasing cart item quantity with error=%w", quantityError())
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Trace().Msg("increasing cart item quantity")
		item, err := queries.AddCartItemQuantity(c, repository.AddCartItemQuantityParams{
			Delta: quantity,
			ID:    existing.ID,
		})
		if err != nil {
			err = fmt.Errorf("failed increasing cart item quantity with error=%w", dependencyError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		delta, err = lineTotal(item.UnitPrice, quantity)
		if err != nil {
			err = fmt.Errorf("failed pricing cart item with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Trace().Msg("increased cart item quantity")
	}

	result, err := svc.applyDelta(logger.WithContext(c), queries, cart.ID, delta)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int64(log.KeyCartTotalPrice, result.TotalPrice).Msg("inserted cart item")

	return result, nil
}

// AdjustCartItemQuantity moves the item quantity one unit up or down. Decreasing an item with a
// single unit removes it from the cart.
func (svc *CartService) AdjustCartItemQuantity(
	c context.Context,
	userId uuid.UUID,
	cartItemId uuid.UUID,
	param request.AdjustCartItemQuantity,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService AdjustCartItemQuantity",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyCartItemID, cartItemId.String()),
			attribute.String(log.KeyDirection, param.Direction),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AdjustCartItemQuantity").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartItemID, cartItemId.String()).
		Str(log.KeyDirection, param.Direction).
		Logger()

	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	cart, item, err := svc.lockCartItem(logger.WithContext(c), queries, userId, cartItemId)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Int32(log.KeyQuantity, item.Quantity).Logger()

	var delta int64
	switch {
	case param.Direction == request.DirectionIncrease && item.Quantity >= request.MaxQuantity:
		err = fmt.Errorf("failed increasing cart item quantity with error=%w", quantityError())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	case param.Direction == request.DirectionIncrease:
		logger = logger.With().Str(log.KeyProcess, "increasing cart item quantity").Logger()
		_, err = queries.AddCartItemQuantity(c, repository.AddCartItemQuantityParams{Delta: 1, ID: item.ID})
		delta = item.UnitPrice
	case item.Quantity > 1:
		logger = logger.With().Str(log.KeyProcess, "decreasing cart item quantity").Logger()
		_, err = queries.AddCartItemQuantity(c, repository.AddCartItemQuantityParams{Delta: -1, ID: item.ID})
		delta = -item.UnitPrice
	default:
		logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
		_, err = queries.DeleteCartItemById(c, item.ID)
		delta = -item.UnitPrice
	}
	if err != nil {
		err = fmt.Errorf("failed adjusting cart item quantity with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Int64(log.KeyDelta, delta).Msg("adjusted cart item quantity")

	result, err := svc.applyDelta(logger.WithContext(c), queries, cart.ID, delta)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int64(log.KeyCartTotalPrice, result.TotalPrice).Msg("adjusted cart item quantity")

	return result, nil
}

func (svc *CartService) RemoveCartItem(
	c context.Context,
	userId uuid.UUID,
	cartItemId uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService RemoveCartItem",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyCartItemID, cartItemId.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartItemID, cartItemId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	cart, item, err := svc.lockCartItem(logger.WithContext(c), queries, userId, cartItemId)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
	logger.Trace().Msg("deleting cart item")
	deleted, err := queries.DeleteCartItemById(c, item.ID)
	if err != nil {
		err = fmt.Errorf("failed deleting cart item with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Msg("deleted cart item")

	removed, err := lineTotal(deleted.UnitPrice, deleted.Quantity)
	if err != nil {
		err = fmt.Errorf("failed pricing cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	result, err := svc.applyDelta(logger.WithContext(c), queries, cart.ID, -removed)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int64(log.KeyCartTotalPrice, result.TotalPrice).Msg("removed cart item")

	return result, nil
}

// FindCartByUserId returns an empty cart with a zero total when the user has none.
func (svc *CartService) FindCartByUserId(c context.Context, userId uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(
		c,
		"CartService FindCartByUserId",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService FindCartByUserId").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	cart, err := svc.queries.FindCartByUserId(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("cart not found returning empty cart")
			return response.Cart{UserID: userId, CartItems: []response.CartItem{}}, nil
		}
		err = fmt.Errorf("failed finding cart with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Str(log.KeyCartID, cart.ID.String()).Logger()
	items, err := svc.queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found cart")

	return cart.Response(items), nil
}

// lockCartItem locks the cart owning cartItemId. Items outside the user's cart are not found.
func (svc *CartService) lockCartItem(
	c context.Context,
	queries *repository.Queries,
	userId uuid.UUID,
	cartItemId uuid.UUID,
) (repository.Cart, repository.CartItem, error) {
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "locking cart").Logger()

	logger.Trace().Msg("locking cart")
	cart, err := queries.FindCartByCartItemIdForUpdate(c, repository.FindCartByCartItemIdForUpdateParams{
		ID:     cartItemId,
		UserID: userId,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed locking cart with error=%w", inErrors.NewNotFoundError("cart item", cartItemId.String()))
		} else {
			err = fmt.Errorf("failed locking cart with error=%w", dependencyError(err))
		}
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, repository.CartItem{}, err
	}

	// the item may have been removed while waiting for the lock
	item, err := queries.FindCartItemById(c, cartItemId)
	if err != nil || item.CartID != cart.ID {
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding cart item with error=%w", inErrors.NewNotFoundError("cart item", cartItemId.String()))
		} else {
			err = fmt.Errorf("failed finding cart item with error=%w", dependencyError(err))
		}
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, repository.CartItem{}, err
	}
	logger.Trace().Msg("locked cart")

	return cart, item, nil
}

// applyDelta moves the running total and reads the cart back inside the same transaction.
func (svc *CartService) applyDelta(
	c context.Context,
	queries *repository.Queries,
	cartId uuid.UUID,
	delta int64,
) (response.Cart, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "applying cart total delta").
		Int64(log.KeyDelta, delta).
		Logger()

	logger.Trace().Msg("applying cart total delta")
	cart, err := queries.AddCartTotalPrice(c, repository.AddCartTotalPriceParams{Delta: delta, ID: cartId})
	if err != nil {
		err = fmt.Errorf("failed applying cart total delta with error=%w", dependencyError(err))
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}

	items, err := queries.FindCartItemsByCartId(c, cartId)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", dependencyError(err))
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Int64(log.KeyCartTotalPrice, cart.TotalPrice).Msg("applied cart total delta")

	return cart.Response(items), nil
}

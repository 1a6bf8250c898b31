package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/infra"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/money"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

// statusRank orders the fulfillment lifecycle. Items only move forward.
var statusRank = map[repository.OrderItemStatus]int{
	repository.OrderItemStatusPlaced:     0,
	repository.OrderItemStatusProcessing: 1,
	repository.OrderItemStatusShipped:    2,
	repository.OrderItemStatusCompleted:  3,
}

type OrderService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	publisher event.Publisher
}

// NewOrderService builds the service. A nil publisher disables order events.
func NewOrderService(pool *pgxpool.Pool, queries *repository.Queries, publisher event.Publisher) *OrderService {
	return &OrderService{pool: pool, queries: queries, publisher: publisher}
}

func dependencyError(err error) error {
	return inErrors.NewDependencyError("database", err)
}

// PlaceOrder turns the user's cart into an order in a single transaction. The cart is deleted
// only when the order, its items and its billing detail are all persisted.
func (svc *OrderService) PlaceOrder(
	c context.Context,
	userId uuid.UUID,
	param request.BillingDetails,
) (response.Order, error) {
	c, span := otel.Tracer.Start(
		c,
		"OrderService PlaceOrder",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService PlaceOrder").
		Str(log.KeyUserID, userId.String()).
		Object(log.KeyBillingDetail, param).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating billing details").Logger()
	logger.Trace().Msg("validating billing details")
	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating billing details with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msg("validated billing details")

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	emptyCart := inErrors.NewValidationError("cart", "cart is empty")

	logger = logger.With().Str(log.KeyProcess, "locking cart").Logger()
	logger.Trace().Msg("locking cart")
	cart, err := queries.FindCartByUserIdForUpdate(c, userId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed locking cart with error=%w", emptyCart)
		} else {
			err = fmt.Errorf("failed locking cart with error=%w", dependencyError(err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	cartItems, err := queries.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(cartItems) == 0 {
		err = fmt.Errorf("failed placing order with error=%w", emptyCart)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Int(log.KeyCartItems, len(cartItems)).Msg("locked cart")

	logger = logger.With().Str(log.KeyProcess, "reconciling cart total").Logger()
	lines := make([]int64, 0, len(cartItems))
	for _, item := range cartItems {
		line, err := money.LineTotal(item.UnitPrice, item.Quantity)
		if err != nil {
			err = fmt.Errorf("failed reconciling cart total with error=%w", inErrors.NewConflictError(err.Error()))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		lines = append(lines, line)
	}
	sum, err := money.Sum(lines...)
	if err != nil {
		err = fmt.Errorf("failed reconciling cart total with error=%w", inErrors.NewConflictError(err.Error()))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if sum != cart.TotalPrice {
		err = fmt.Errorf(
			"failed reconciling cart total with error=%w",
			inErrors.NewConflictError(fmt.Sprintf("cart total %d does not match items total %d", cart.TotalPrice, sum)),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Trace().Msg("inserting order")
	span.AddEvent("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:    userId,
		Amount:    cart.TotalPrice,
		OrderNote: param.OrderNote,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	span.SetAttributes(attribute.String(log.KeyOrderID, order.ID.String()))

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Trace().Msg("inserting order items")
	args := make([]repository.InsertOrderItemsParams, len(cartItems))
	for i, item := range cartItems {
		args[i] = repository.InsertOrderItemsParams{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Size:      item.Size,
			Color:     item.Color,
		}
	}
	insertedCount, err := queries.InsertOrderItems(c, args)
	if err != nil {
		err = fmt.Errorf("failed inserting order items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Trace().Msgf("inserted %d order items", insertedCount)

	logger = logger.With().Str(log.KeyProcess, "resolving billing address").Logger()
	address, err := svc.resolveBillingAddress(logger.WithContext(c), queries, userId, param)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyAddressID, address.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting billing detail").Logger()
	logger.Trace().Msg("inserting billing detail")
	billingDetail, err := queries.InsertBillingDetail(c, repository.InsertBillingDetailParams{
		OrderID:   order.ID,
		Name:      param.Name,
		AddressID: address.ID,
		Phone:     param.Phone,
		Email:     param.Email,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting billing detail with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "deleting cart").Logger()
	logger.Trace().Msg("deleting cart")
	if err = queries.DeleteCartById(c, cart.ID); err != nil {
		err = fmt.Errorf("failed deleting cart with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	orderItems, err := queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	span.AddEvent("placed order")
	logger.Info().Int64(log.KeyAmount, order.Amount).Msg("placed order")
	otel.OrdersPlaced.Add(c, 1)
	otel.OrderAmount.Record(c, order.Amount)

	svc.publishOrderPlaced(logger.WithContext(c), order, orderItems)

	result := order.Response(orderItems)
	result.BillingDetail = billingDetail.Response(address)
	return result, nil
}

func (svc *OrderService) resolveBillingAddress(
	c context.Context,
	queries *repository.Queries,
	userId uuid.UUID,
	param request.BillingDetails,
) (repository.Address, error) {
	logger := zerolog.Ctx(c)

	address, err := queries.FindAddressByFields(c, repository.FindAddressByFieldsParams{
		UserID:  userId,
		Address: param.Address,
		PinCode: param.PinCode,
		City:    param.City,
		State:   param.State,
		Country: param.Country,
	})
	if err == nil {
		logger.Trace().Msg("reusing existing address")
		return address, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding address with error=%w", dependencyError(err))
		logger.Error().Err(err).Msg(err.Error())
		return repository.Address{}, err
	}

	logger.Trace().Msg("inserting billing address")
	address, err = queries.InsertAddress(c, repository.InsertAddressParams{
		UserID:  userId,
		Address: param.Address,
		PinCode: param.PinCode,
		City:    param.City,
		State:   param.State,
		Country: param.Country,
		Type:    repository.AddressTypeBilling,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting address with error=%w", dependencyError(err))
		logger.Error().Err(err).Msg(err.Error())
		return repository.Address{}, err
	}
	return address, nil
}

// publishOrderPlaced runs after commit. The order stands even when publishing fails.
func (svc *OrderService) publishOrderPlaced(
	c context.Context,
	order repository.Order,
	orderItems []repository.OrderItem,
) {
	if svc.publisher == nil {
		return
	}
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "publishing order placed").Logger()

	items := make([]event.OrderPlacedItem, len(orderItems))
	for i, item := range orderItems {
		items[i] = event.OrderPlacedItem{
			OrderItemID: item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Size:        item.Size,
			Color:       item.Color,
		}
	}
	e := event.OrderPlaced{
		OrderID:  order.ID,
		UserID:   order.UserID,
		Amount:   order.Amount,
		Items:    items,
		PlacedAt: order.CreatedAt.Time,
	}
	if e.PlacedAt.IsZero() {
		e.PlacedAt = time.Now()
	}

	if err := svc.publisher.PublishOrderPlaced(c, e); err != nil {
		err = fmt.Errorf("failed publishing order placed with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("published order placed")
}

// UpdateOrderItemStatus moves an item of one of the vendor's products forward in the fulfillment
// lifecycle. Setting the current status again is a no-op.
func (svc *OrderService) UpdateOrderItemStatus(
	c context.Context,
	vendorUserId uuid.UUID,
	orderItemId uuid.UUID,
	param request.UpdateOrderItemStatus,
) (response.OrderItem, error) {
	c, span := otel.Tracer.Start(
		c,
		"OrderService UpdateOrderItemStatus",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, vendorUserId.String()),
			attribute.String(log.KeyOrderItemID, orderItemId.String()),
			attribute.String(log.KeyOrderItemStatus, param.Status),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateOrderItemStatus").
		Str(log.KeyUserID, vendorUserId.String()).
		Str(log.KeyOrderItemID, orderItemId.String()).
		Str(log.KeyOrderItemStatus, param.Status).
		Logger()

	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}
	next := repository.OrderItemStatus(param.Status)

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}
	defer infra.Rollback(logger.WithContext(c), tx)
	queries := svc.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "locking order item").Logger()
	logger.Trace().Msg("locking order item")
	item, err := queries.FindOrderItemByIdAndVendorUserIdForUpdate(
		c,
		repository.FindOrderItemByIdAndVendorUserIdForUpdateParams{ID: orderItemId, UserID: vendorUserId},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed locking order item with error=%w", inErrors.NewNotFoundError("order item", orderItemId.String()))
		} else {
			err = fmt.Errorf("failed locking order item with error=%w", dependencyError(err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}

	switch {
	case item.Status == next:
		logger.Info().Msg("order item already has the requested status")
		return item.Response(), nil
	case statusRank[next] < statusRank[item.Status]:
		err = fmt.Errorf(
			"failed updating order item status with error=%w",
			inErrors.NewValidationError("status", fmt.Sprintf("cannot move from %s back to %s", item.Status, next)),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "updating order item status").Logger()
	updated, err := queries.UpdateOrderItemStatus(c, repository.UpdateOrderItemStatusParams{ID: item.ID, Status: next})
	if err != nil {
		err = fmt.Errorf("failed updating order item status with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}

	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.OrderItem{}, err
	}
	logger.Info().Msgf("moved order item from %s to %s", item.Status, updated.Status)
	otel.OrderItemTransitioned.Add(c, 1, metric.WithAttributes(attribute.String(log.KeyOrderItemStatus, string(updated.Status))))

	return updated.Response(), nil
}

func (svc *OrderService) FindOrders(c context.Context, userId uuid.UUID) ([]response.Order, error) {
	c, span := otel.Tracer.Start(
		c,
		"OrderService FindOrders",
		trace.WithAttributes(attribute.String(log.KeyUserID, userId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	orders, err := svc.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	result := make([]response.Order, 0, len(orders))
	for _, order := range orders {
		items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
		if err != nil {
			err = fmt.Errorf("failed finding order items with error=%w", dependencyError(err))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Str(log.KeyOrderID, order.ID.String()).Msg(err.Error())
			return nil, err
		}
		result = append(result, order.Response(items))
	}
	logger.Info().Int(log.KeyOrders, len(result)).Msg("found orders")

	return result, nil
}

func (svc *OrderService) FindOrderById(c context.Context, userId uuid.UUID, orderId uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(
		c,
		"OrderService FindOrderById",
		trace.WithAttributes(
			attribute.String(log.KeyUserID, userId.String()),
			attribute.String(log.KeyOrderID, orderId.String()),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	order, err := svc.queries.FindOrderByIdAndUserId(c, repository.FindOrderByIdAndUserIdParams{ID: orderId, UserID: userId})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed finding order with error=%w", inErrors.NewNotFoundError("order", orderId.String()))
		} else {
			err = fmt.Errorf("failed finding order with error=%w", dependencyError(err))
		}
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	items, err := svc.queries.FindOrderItemsByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	result := order.Response(items)

	logger = logger.With().Str(log.KeyProcess, "finding billing detail").Logger()
	billingDetail, err := svc.queries.FindBillingDetailByOrderId(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding billing detail with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	address, err := svc.queries.FindAddressById(c, billingDetail.AddressID)
	if err != nil {
		err = fmt.Errorf("failed finding billing address with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	result.BillingDetail = billingDetail.Response(address)
	logger.Info().Msg("found order")

	return result, nil
}

// FindPendingOrderItems lists the vendor's order items that are not completed yet.
func (svc *OrderService) FindPendingOrderItems(c context.Context, vendorUserId uuid.UUID) ([]response.OrderItem, error) {
	c, span := otel.Tracer.Start(
		c,
		"OrderService FindPendingOrderItems",
		trace.WithAttributes(attribute.String(log.KeyUserID, vendorUserId.String())),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindPendingOrderItems").
		Str(log.KeyUserID, vendorUserId.String()).
		Logger()

	items, err := svc.queries.FindPendingOrderItemsByVendorUserId(c, vendorUserId)
	if err != nil {
		err = fmt.Errorf("failed finding pending order items with error=%w", dependencyError(err))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	result := make([]response.OrderItem, len(items))
	for i, item := range items {
		result[i] = item.Response()
	}
	logger.Info().Int(log.KeyOrderItems, len(result)).Msg("found pending order items")

	return result, nil
}

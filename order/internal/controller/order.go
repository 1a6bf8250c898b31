package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/token"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/internal/service"
	"github.com/Alturino/storefront/order/pkg/request"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService, secretKey string) {
	controller := OrderController{service: service}

	orderRouter := router.PathPrefix("/orders").Subrouter()
	orderRouter.Use(middleware.Auth(secretKey), middleware.RequireRole(token.RoleCustomer))
	orderRouter.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	orderRouter.HandleFunc("/checkout", controller.PlaceOrder).Methods(http.MethodPost)
	orderRouter.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)

	vendorRouter := router.PathPrefix("/vendors/order-items").Subrouter()
	vendorRouter.Use(middleware.Auth(secretKey), middleware.RequireRole(token.RoleVendor))
	vendorRouter.HandleFunc("", controller.FindPendingOrderItems).Methods(http.MethodGet)
	vendorRouter.HandleFunc("/{orderItemId}", controller.UpdateOrderItemStatus).Methods(http.MethodPatch)
}

func (ctrl OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController PlaceOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController PlaceOrder").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.BillingDetails{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError("body", err.Error()))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "placing order").Logger()
	logger.Info().Msg("placing order")
	c = logger.WithContext(c)
	order, err := ctrl.service.PlaceOrder(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed placing order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyOrderID, order.ID.String()).Msg("placed order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusCreated,
		"message":    "successfully placed order",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (ctrl OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	c = logger.WithContext(c)
	orders, err := ctrl.service.FindOrders(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found orders")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "found orders",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (ctrl OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	orderId, err := pathUUID(r, "orderId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	span.SetAttributes(attribute.String(log.KeyOrderID, orderId.String()))
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	c = logger.WithContext(c)
	order, err := ctrl.service.FindOrderById(c, userId, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "found order",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (ctrl OrderController) FindPendingOrderItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindPendingOrderItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindPendingOrderItems").
		Logger()

	vendorUserId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "finding pending order items").Logger()
	c = logger.WithContext(c)
	items, err := ctrl.service.FindPendingOrderItems(c, vendorUserId)
	if err != nil {
		err = fmt.Errorf("failed finding pending order items with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "found pending order items",
		"data": map[string]interface{}{
			"orderItems": items,
		},
	})
}

func (ctrl OrderController) UpdateOrderItemStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController UpdateOrderItemStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController UpdateOrderItemStatus").
		Logger()

	vendorUserId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting user id with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	orderItemId, err := pathUUID(r, "orderItemId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	span.SetAttributes(attribute.String(log.KeyOrderItemID, orderItemId.String()))
	logger = logger.With().Str(log.KeyOrderItemID, orderItemId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	reqBody := request.UpdateOrderItemStatus{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError("body", err.Error()))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating order item status").Logger()
	logger.Info().Msg("updating order item status")
	c = logger.WithContext(c)
	item, err := ctrl.service.UpdateOrderItemStatus(c, vendorUserId, orderItemId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating order item status with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated order item status")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("order item is %s", item.Status),
		"data": map[string]interface{}{
			"orderItem": item,
		},
	})
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed getting %s with error=%w",
			key,
			inErrors.NewValidationError(key, "must be a valid uuid"),
		)
	}
	return id, nil
}

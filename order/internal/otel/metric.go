package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/storefront/internal/constants"
)

var Meter = otel.Meter(constants.AppOrderService)

var (
	OrdersPlaced          metric.Int64Counter
	OrderAmount           metric.Int64Histogram
	OrderItemTransitioned metric.Int64Counter
)

func init() {
	var err error
	OrdersPlaced, err = Meter.Int64Counter(
		"storefront.orders.placed",
		metric.WithDescription("Number of orders placed at checkout."),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		panic(err)
	}
	OrderAmount, err = Meter.Int64Histogram(
		"storefront.orders.amount",
		metric.WithDescription("Amount of placed orders in the smallest currency unit."),
	)
	if err != nil {
		panic(err)
	}
	OrderItemTransitioned, err = Meter.Int64Counter(
		"storefront.order_items.transitioned",
		metric.WithDescription("Number of order item status changes by target status."),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		panic(err)
	}
}

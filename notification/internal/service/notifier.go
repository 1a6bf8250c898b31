package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/event"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/notification/internal/otel"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Catalog interface {
	FindProductById(c context.Context, id uuid.UUID) (productResponse.Product, error)
}

// Notifier tells vendors about newly placed order items. Delivery is a structured log line per
// item; the counters track how many were sent or dropped.
type Notifier struct {
	catalog Catalog
	sent    prometheus.Counter
	failed  prometheus.Counter
}

func NewNotifier(catalog Catalog, appName string, registerer prometheus.Registerer) *Notifier {
	subsystem := strings.ReplaceAll(appName, "-", "_")
	n := &Notifier{
		catalog: catalog,
		sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: subsystem,
			Name:      "vendor_notifications_total",
			Help:      "Number of vendor notifications sent for placed order items.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: subsystem,
			Name:      "vendor_notifications_failed_total",
			Help:      "Number of placed order items whose vendor could not be notified.",
		}),
	}
	registerer.MustRegister(n.sent, n.failed)
	return n
}

// HandleOrderPlaced matches event.Handler. Every item is attempted; the returned error joins the
// failures.
func (n *Notifier) HandleOrderPlaced(c context.Context, e event.OrderPlaced) error {
	c, span := otel.Tracer.Start(
		c,
		"Notifier HandleOrderPlaced",
		trace.WithAttributes(
			attribute.String(log.KeyOrderID, e.OrderID.String()),
			attribute.Int(log.KeyOrderItems, len(e.Items)),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Notifier HandleOrderPlaced").
		Str(log.KeyOrderID, e.OrderID.String()).
		Str(log.KeyUserID, e.UserID.String()).
		Logger()

	var errs []error
	for _, item := range e.Items {
		itemLogger := logger.With().
			Str(log.KeyOrderItemID, item.OrderItemID.String()).
			Str(log.KeyProductID, item.ProductID.String()).
			Logger()

		product, err := n.catalog.FindProductById(itemLogger.WithContext(c), item.ProductID)
		if err != nil {
			err = fmt.Errorf("failed finding vendor of order item=%s with error=%w", item.OrderItemID, err)
			inOtel.RecordError(err, span)
			itemLogger.Error().Err(err).Msg(err.Error())
			n.failed.Inc()
			errs = append(errs, err)
			continue
		}

		itemLogger.Info().
			Str(log.KeyVendorID, product.VendorID.String()).
			Str(log.KeyProduct, product.Name).
			Int32(log.KeyQuantity, item.Quantity).
			Str("size", item.Size).
			Str("color", item.Color).
			Msg("notified vendor of new order item")
		n.sent.Inc()
	}

	return errors.Join(errs...)
}

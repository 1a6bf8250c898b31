package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type OrderPlacedItem struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int32     `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
}

type OrderPlaced struct {
	OrderID  uuid.UUID         `json:"order_id"`
	UserID   uuid.UUID         `json:"user_id"`
	Amount   int64             `json:"amount"`
	Items    []OrderPlacedItem `json:"items"`
	PlacedAt time.Time         `json:"placed_at"`
	Trace    map[string]string `json:"trace,omitempty"`
}

// InjectTrace stores the span context of c on the event so subscribers can continue the trace.
func (e *OrderPlaced) InjectTrace(c context.Context) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(c, carrier)
	e.Trace = carrier
}

func (e OrderPlaced) ExtractTrace(c context.Context) context.Context {
	if len(e.Trace) == 0 {
		return c
	}
	return otel.GetTextMapPropagator().Extract(c, propagation.MapCarrier(e.Trace))
}

type Publisher interface {
	PublishOrderPlaced(c context.Context, e OrderPlaced) error
	Close() error
}

type Handler func(c context.Context, e OrderPlaced) error

type Subscriber interface {
	// Subscribe blocks until c is done. Handler errors are logged and do not stop the loop.
	Subscribe(c context.Context, handler Handler) error
	Close() error
}

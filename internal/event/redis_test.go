package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/internal/testutil"
)

func TestRedisPublishSubscribe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	c := testutil.Context(t)
	client := testutil.NewRedis(t, c)

	subscriber := NewRedisSubscriber(client, "order-placed")
	publisher := NewRedisPublisher(client, "order-placed")

	received := make(chan OrderPlaced, 1)
	subCtx, cancel := context.WithCancel(c)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- subscriber.Subscribe(subCtx, func(c context.Context, e OrderPlaced) error {
			select {
			case received <- e:
			default:
			}
			return nil
		})
	}()

	expected := OrderPlaced{
		OrderID: uuid.New(),
		UserID:  uuid.New(),
		Amount:  1300,
		Items: []OrderPlacedItem{
			{OrderItemID: uuid.New(), ProductID: uuid.New(), Quantity: 2, UnitPrice: 500, Size: "M", Color: "Red"},
		},
		PlacedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	require.Eventually(t, func() bool {
		if err := publisher.PublishOrderPlaced(c, expected); err != nil {
			return false
		}
		select {
		case got := <-received:
			assert.Equal(t, expected.OrderID, got.OrderID)
			assert.Equal(t, expected.Amount, got.Amount)
			assert.Equal(t, expected.Items, got.Items)
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 250*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
	assert.NoError(t, subscriber.Close())
}

func TestOrderPlacedTraceRoundTrip(t *testing.T) {
	e := OrderPlaced{}
	e.InjectTrace(context.Background())
	c := e.ExtractTrace(context.Background())
	assert.NotNil(t, c)
}

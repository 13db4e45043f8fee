package event

import (
	"context"
	"errors"
	"testing"

	"github.com/boutikla/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	fail     bool
}

func (h *recordingHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	h.received = append(h.received, e)
	if h.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func newEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Sale", uuid.New())
	return &e
}

func TestInMemoryEventBusPublish(t *testing.T) {
	t.Run("delivers to subscribed handlers only", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		saleHandler := &recordingHandler{types: []string{"sale.created"}}
		orderHandler := &recordingHandler{types: []string{"purchase_order.completed"}}
		bus.Subscribe(saleHandler)
		bus.Subscribe(orderHandler)

		require.NoError(t, bus.Publish(context.Background(), newEvent("sale.created")))

		assert.Len(t, saleHandler.received, 1)
		assert.Empty(t, orderHandler.received)
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		audit := &recordingHandler{}
		bus.Subscribe(audit)

		require.NoError(t, bus.Publish(context.Background(),
			newEvent("sale.created"), newEvent("return.canceled")))

		assert.Len(t, audit.received, 2)
	})

	t.Run("handler failure does not stop dispatch, but surfaces", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"sale.created"}, fail: true}
		healthy := &recordingHandler{types: []string{"sale.created"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(context.Background(), newEvent("sale.created"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "handler failure")
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"sale.created"}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(context.Background(), newEvent("sale.created")))
		assert.Empty(t, h.received)
	})
}

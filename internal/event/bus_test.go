package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishRunsHandlersInOrder(t *testing.T) {
	bus := NewBus()
	var calls []string

	bus.Subscribe(FieldChanged, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.Field)
		return nil
	})
	bus.Subscribe(FieldChanged, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Field)
		return nil
	})
	bus.Subscribe(SubmitRequested, func(_ context.Context, _ Event) error {
		calls = append(calls, "submit")
		return nil
	})

	err := bus.Publish(context.Background(), Event{Kind: FieldChanged, Field: "age"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"first:age", "second:age"}, calls)
}

func TestBus_PublishStopsAtFirstError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	called := false

	bus.Subscribe(SubmitRequested, func(context.Context, Event) error { return boom })
	bus.Subscribe(SubmitRequested, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Kind: SubmitRequested})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestBus_PublishWithoutHandlers(t *testing.T) {
	bus := NewBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Kind: ResetRequested}))
}

package pubsub_test

import (
	"context"
	"errors"
	"testing"

	"gdps-backend/core/pubsub"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRouter_DispatchFansOut(t *testing.T) {
	router := pubsub.NewRouter(zap.NewNop())

	var first, second []byte
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		first = payload
		return nil
	})
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		second = payload
		return nil
	})

	router.Dispatch(context.Background(), "topic", []byte("hello"))

	assert.Equal(t, []byte("hello"), first)
	assert.Equal(t, []byte("hello"), second)
}

func TestRouter_FailingHandlerIsIsolated(t *testing.T) {
	router := pubsub.NewRouter(zap.NewNop())

	ran := false
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		return errors.New("handler broke")
	})
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		ran = true
		return nil
	})

	router.Dispatch(context.Background(), "topic", nil)

	assert.True(t, ran, "a failing handler must not block the rest")
}

func TestRouter_PanickingHandlerIsIsolated(t *testing.T) {
	router := pubsub.NewRouter(zap.NewNop())

	ran := false
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		panic("handler exploded")
	})
	router.Register("topic", func(ctx context.Context, payload []byte) error {
		ran = true
		return nil
	})

	assert.NotPanics(t, func() {
		router.Dispatch(context.Background(), "topic", nil)
	})
	assert.True(t, ran, "a panicking handler must not block the rest")
}

func TestRouter_UnknownTopicIsNoOp(t *testing.T) {
	router := pubsub.NewRouter(zap.NewNop())

	assert.NotPanics(t, func() {
		router.Dispatch(context.Background(), "unregistered", []byte("x"))
	})
}

func TestRouter_Topics(t *testing.T) {
	router := pubsub.NewRouter(zap.NewNop())
	router.Register("a", func(ctx context.Context, payload []byte) error { return nil })
	router.Register("a", func(ctx context.Context, payload []byte) error { return nil })
	router.Register("b", func(ctx context.Context, payload []byte) error { return nil })

	assert.ElementsMatch(t, []string{"a", "b"}, router.Topics())
}

package shutdownqueue

import (
	"context"
	"errors"
	"testing"
	"time"
)

// The queue is process-wide, so ordering, panic recovery, idempotency and
// cancellation are exercised in one sequential test.
func TestShutdownQueue(t *testing.T) {
	var order []string

	Add(nil) // ignored

	Add(func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	Add(func(context.Context) error {
		order = append(order, "second")
		return errors.New("second failed")
	})
	Add(func(context.Context) error {
		panic("third panicked")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := Shutdown(ctx)
	if err == nil {
		t.Fatalf("want joined errors from failing and panicking tasks")
	}

	// LIFO: the panicking task ran first, then second, then first
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Fatalf("want [second first], got %v", order)
	}

	// second drain is a no-op
	err = Shutdown(ctx)
	if err != nil {
		t.Fatalf("second shutdown: want nil, got %v", err)
	}

	// tasks added after shutdown never run
	ran := false
	Add(func(context.Context) error {
		ran = true
		return nil
	})

	_ = Shutdown(ctx)
	if ran {
		t.Fatalf("task added after shutdown must not run")
	}
}

package taskpool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHandleWaitReturnsContextErrorBeforeResolution(t *testing.T) {
	h := newHandle[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := h.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() err = %v; want context.DeadlineExceeded", err)
	}
}

func TestHandleWaitAfterResolutionReturnsImmediately(t *testing.T) {
	h := newHandle[string]()
	h.resolve("done", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := h.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() err = %v; want nil", err)
	}
	if v != "done" {
		t.Fatalf("Wait() value = %q; want %q", v, "done")
	}

	// A second Wait on an already-resolved handle must not block or
	// panic on a receive from a closed, drained channel.
	v2, err2 := h.Wait(ctx)
	if err2 != nil || v2 != "done" {
		t.Fatalf("second Wait() = (%q, %v); want (%q, nil)", v2, err2, "done")
	}
}

func TestHandleResolveIsOnlyEffectiveOnce(t *testing.T) {
	h := newHandle[int]()
	h.resolve(1, nil)
	h.resolve(2, errors.New("ignored"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := h.Wait(ctx)
	if err != nil || v != 1 {
		t.Fatalf("Wait() = (%d, %v); want (1, nil) — first resolve wins", v, err)
	}
}

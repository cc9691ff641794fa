package observability

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewShutdownManager_DefaultTimeout(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, &http.Server{}, 0)

	if sm.shutdownTimeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", sm.shutdownTimeout)
	}
}

func TestShutdown_RunsRegisteredFuncs(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, time.Second)

	var calls int32
	sm.RegisterShutdownFunc(func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	sm.RegisterShutdownFunc(func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	if err := sm.shutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestShutdown_CollectsErrors(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, time.Second)

	sm.RegisterShutdownFunc(func(context.Context) error {
		return errors.New("close failed")
	})

	if err := sm.shutdown(); err == nil {
		t.Error("Expected error from failing shutdown func")
	}
}

func TestShutdown_TimesOut(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, 50*time.Millisecond)

	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	start := time.Now()
	if err := sm.shutdown(); err == nil {
		t.Error("Expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Error("shutdown did not respect its timeout")
	}
}

package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/view"

	"go.uber.org/goleak"
)

func TestStartStop_NoLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := NewServer("127.0.0.1:0", catalog.Default(), view.Options{}, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		_ = srv.Stop()
		t.Fatalf("GET health: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	client.CloseIdleConnections()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestStop_BeforeStart(t *testing.T) {
	srv := NewServer("", catalog.Default(), view.Options{}, nil)
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop before Start = %v, want nil", err)
	}
}

func TestWait_ReturnsServeFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := NewServer("127.0.0.1:0", catalog.Default(), view.Options{}, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	// Losing the listener ends Serve with an error other than ErrServerClosed.
	srv.listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Wait(ctx); err == nil {
		t.Fatal("Wait = nil, want the serve error")
	}
}

func TestWait_NilAfterStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := NewServer("127.0.0.1:0", catalog.Default(), view.Options{}, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Wait(ctx); err != nil {
		t.Fatalf("Wait after Stop = %v, want nil", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Wait only returned because the deadline passed")
	}
}

func TestWait_BeforeStart(t *testing.T) {
	srv := NewServer("", catalog.Default(), view.Options{}, nil)
	if err := srv.Wait(context.Background()); err == nil {
		t.Fatal("Wait before Start = nil, want error")
	}
}

package realtime_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/realtime"
	"github.com/ordena/ordena/pkg/event"
	"github.com/ordena/ordena/pkg/sse"
	"github.com/ordena/ordena/pkg/workerpool"
)

// ResponseRecorder implements http.Flusher, so it carries SSE streams.
func newStatusStream(t *testing.T) (*sse.Stream, *httptest.ResponseRecorder, context.CancelFunc) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/orders/1/status/stream", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	stream := sse.New(rec, req)
	if stream == nil {
		t.Fatal("expected a usable stream")
	}
	return stream, rec, cancel
}

func TestStreamOrderStatusStopsOnDisconnect(t *testing.T) {
	stream, _, cancel := newStatusStream(t)

	done := make(chan struct{})
	go func() {
		realtime.StreamOrderStatus(stream, 1, models.StatusPending)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after the client disconnected")
	}
}

func TestStreamOrderStatusEndsWhenDelivered(t *testing.T) {
	stream, rec, cancel := newStatusStream(t)
	defer cancel()

	// Terminal status: the stream sends it once and returns.
	realtime.StreamOrderStatus(stream, 1, models.StatusDelivered)

	if body := rec.Body.String(); !strings.Contains(body, models.StatusDelivered) {
		t.Fatalf("expected the delivered status in the stream, got %q", body)
	}
}

func TestStreamOrderStatusForwardsUpdates(t *testing.T) {
	realtime.Start(workerpool.New(4))

	stream, rec, cancel := newStatusStream(t)
	defer cancel()

	done := make(chan struct{})
	go func() {
		realtime.StreamOrderStatus(stream, 7, models.StatusShipped)
		close(done)
	}()

	// The watcher registers asynchronously, so keep firing until the
	// delivered status lands and ends the stream.
	order := models.Order{UserID: 1, Status: models.StatusDelivered}
	order.ID = 7
	deadline := time.After(2 * time.Second)
	for {
		event.Fire("order.status_changed", order)
		select {
		case <-done:
			if body := rec.Body.String(); !strings.Contains(body, models.StatusDelivered) {
				t.Fatalf("expected the delivered status in the stream, got %q", body)
			}
			return
		case <-deadline:
			t.Fatal("delivered status never reached the stream")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Package realtime fans order events out to connected staff dashboards
// over WebSocket and streams per-order status updates over SSE.
package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/event"
	"github.com/ordena/ordena/pkg/logger"
	"github.com/ordena/ordena/pkg/sse"
	"github.com/ordena/ordena/pkg/workerpool"
	"github.com/ordena/ordena/pkg/ws"
)

// OrderFeed is the hub behind /ws/orders.
var OrderFeed = ws.NewHub()

var (
	watchMu  sync.RWMutex
	watchers = map[uint][]chan string{} // order ID → status channels
)

type feedMessage struct {
	Event   string  `json:"event"`
	OrderID uint    `json:"order_id"`
	UserID  uint    `json:"user_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// Start runs the feed hub and subscribes it to the order events. The
// pool bounds how many broadcasts may be in flight at once.
func Start(pool *workerpool.Pool) {
	go OrderFeed.Run()

	event.Listen("order.placed", func(payload interface{}) {
		dispatch(pool, "order.placed", payload)
	})
	event.Listen("order.status_changed", func(payload interface{}) {
		dispatch(pool, "order.status_changed", payload)
	})
}

func dispatch(pool *workerpool.Pool, name string, payload interface{}) {
	order, ok := payload.(models.Order)
	if !ok {
		return
	}

	err := pool.Submit(func() {
		broadcast(name, order)
		notifyWatchers(order)
	})
	if errors.Is(err, workerpool.ErrPoolFull) {
		logger.Warn("realtime: feed backlog, dropping event",
			"event", name, "order_id", order.ID)
	}
}

func broadcast(name string, order models.Order) {
	msg, err := json.Marshal(feedMessage{
		Event:   name,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.Total,
	})
	if err != nil {
		return
	}
	OrderFeed.Broadcast <- msg
}

// Watch subscribes to status updates for one order. The returned cancel
// func must be called when the subscriber goes away.
func Watch(orderID uint) (<-chan string, func()) {
	ch := make(chan string, 4)

	watchMu.Lock()
	watchers[orderID] = append(watchers[orderID], ch)
	watchMu.Unlock()

	cancel := func() {
		watchMu.Lock()
		defer watchMu.Unlock()
		chans := watchers[orderID]
		for i, c := range chans {
			if c == ch {
				watchers[orderID] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
		if len(watchers[orderID]) == 0 {
			delete(watchers, orderID)
		}
	}
	return ch, cancel
}

func notifyWatchers(order models.Order) {
	watchMu.RLock()
	defer watchMu.RUnlock()
	for _, ch := range watchers[order.ID] {
		select {
		case ch <- order.Status:
		default: // slow subscriber keeps only the updates it can take
		}
	}
}

// StreamOrderStatus writes the order's status over SSE until the client
// disconnects, starting with the current status.
func StreamOrderStatus(stream *sse.Stream, orderID uint, current string) {
	if stream == nil {
		return
	}

	updates, cancel := Watch(orderID)
	defer cancel()

	_ = stream.Send("status", map[string]interface{}{"order_id": orderID, "status": current})
	if current == models.StatusDelivered {
		return
	}

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-stream.Done():
			return
		case status := <-updates:
			_ = stream.Send("status", map[string]interface{}{"order_id": orderID, "status": status})
			if status == models.StatusDelivered {
				return
			}
		case <-heartbeat.C:
			stream.Comment("keepalive")
		}
		if stream.IsClosed() {
			return
		}
	}
}

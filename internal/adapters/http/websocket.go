package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"
)

// wsMessage is sent from client to narrow or widen the event feed.
type wsMessage struct {
	Action  string `json:"action"`            // "subscribe" | "unsubscribe"
	Channel string `json:"channel"`           // "created" | "routes" | "all"
	TripID  string `json:"trip_id,omitempty"` // optional filter to one trip
}

// WebSocketHandler upgrades to WebSocket and relays trip events from
// NATS to the client. New connections start on the full trip feed;
// clients send JSON like {"action":"subscribe","channel":"routes"} to
// adjust what they receive.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()

		// The server may run without a broker connection. Tell the
		// client instead of dereferencing a nil conn.
		if nc == nil {
			msg, _ := json.Marshal(map[string]string{"error": "event stream unavailable"})
			_ = c.WriteMessage(websocket.TextMessage, msg)
			return
		}

		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		subscribe := func(subject string) error {
			if _, exists := subs[subject]; exists {
				return writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
			}
			s, err := nc.Subscribe(subject, func(msg *nats.Msg) {
				_ = writeJSON(json.RawMessage(msg.Data))
			})
			if err != nil {
				return writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
			}
			subs[subject] = s
			return writeJSON(map[string]string{"status": "subscribed", "subject": subject})
		}

		// All trip events by default.
		defaultSubject := "trips.>"
		sub, err := nc.Subscribe(defaultSubject, func(msg *nats.Msg) {
			_ = writeJSON(json.RawMessage(msg.Data))
		})
		if err != nil {
			slog.Warn("ws default subscribe", "error", err)
			return
		}
		subs[defaultSubject] = sub

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			var subject string
			switch m.Channel {
			case "created":
				subject = "trips.created.>"
				if m.TripID != "" {
					subject = "trips.created." + m.TripID
				}
			case "routes":
				subject = "trips.route_saved.>"
				if m.TripID != "" {
					subject = "trips.route_saved." + m.TripID
				}
			case "all", "":
				subject = "trips.>"
			default:
				_ = writeJSON(map[string]string{"error": "unknown channel: " + m.Channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				_ = subscribe(subject)

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}

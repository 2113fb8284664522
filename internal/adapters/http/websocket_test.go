package http_test

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/fasthttp/websocket"
)

func TestWebSocket_NoBrokerConnection(t *testing.T) {
	// Without a broker connection the relay must refuse the client
	// gracefully instead of crashing the upgraded connection.
	app := setupApp(makeDeps())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.Shutdown() }()

	url := "ws://" + ln.Addr().String() + "/ws"
	var conn *websocket.Conn
	for i := 0; i < 20; i++ {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(msg, &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "event stream unavailable" {
		t.Errorf("expected unavailable notice, got %v", body)
	}

	// The server hangs up right after the notice.
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected connection to close")
	}
}

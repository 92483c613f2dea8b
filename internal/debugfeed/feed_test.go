package debugfeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"grid-tower-defense/internal/app"
	"grid-tower-defense/internal/event"
)

type fixedSource struct{ view app.View }

func (f fixedSource) View() app.View { return f.view }

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decode %s: %v", payload, err)
	}
	return msg
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestInitialFrameIsCurrentView(t *testing.T) {
	src := fixedSource{view: app.View{Active: true, Stats: app.StatsView{Wave: 3, MapID: "meadow"}}}
	conn := dial(t, NewHub(src, Config{}))

	msg := readMessage(t, conn)
	if msg.Type != "view" || msg.View == nil {
		t.Fatalf("first frame = %+v", msg)
	}
	if msg.View.Stats.Wave != 3 || msg.View.Stats.MapID != "meadow" {
		t.Fatalf("view stats = %+v", msg.View.Stats)
	}
}

func TestPublishesViewsAndEvents(t *testing.T) {
	h := NewHub(fixedSource{}, Config{})
	conn := dial(t, h)
	readMessage(t, conn)
	waitForClients(t, h, 1)

	h.PublishView(app.View{Stats: app.StatsView{Money: 42}})
	msg := readMessage(t, conn)
	if msg.Type != "view" || msg.View.Stats.Money != 42 {
		t.Fatalf("published view = %+v", msg)
	}

	h.OnEvent(event.Event{Type: event.WaveStarted, Data: event.WaveData{Wave: 7, Boss: false}})
	msg = readMessage(t, conn)
	if msg.Type != "event" || msg.Event != event.WaveStarted {
		t.Fatalf("event frame = %+v", msg)
	}
	data, ok := msg.Data.(map[string]any)
	if !ok || data["Wave"] != float64(7) {
		t.Fatalf("event data = %#v", msg.Data)
	}
}

func TestClosedClientIsDropped(t *testing.T) {
	h := NewHub(fixedSource{}, Config{})
	conn := dial(t, h)
	readMessage(t, conn)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
	// Nobody listening; must not block or panic.
	h.PublishView(app.View{})
}

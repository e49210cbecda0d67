package broadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, h *Hub, contestID uint) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.HandleWS(w, r, contestID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(conn *websocket.Conn, timeout time.Duration) (Event, error) {
	conn.SetReadDeadline(time.Now().Add(timeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return Event{}, err
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}

func TestHubRoutesEventsByContest(t *testing.T) {
	h := NewHub()
	go h.Run()

	watching := dialHub(t, h, 1)
	other := dialHub(t, h, 2)
	time.Sleep(100 * time.Millisecond) // let both registrations land

	h.Publish(Event{Type: "round_result", ContestID: 1, Payload: map[string]int{"round": 3}})

	ev, err := readEvent(watching, 2*time.Second)
	if err != nil {
		t.Fatalf("watching client got no event: %v", err)
	}
	if ev.Type != "round_result" || ev.ContestID != 1 {
		t.Errorf("unexpected event: %+v", ev)
	}

	if ev, err := readEvent(other, 200*time.Millisecond); err == nil {
		t.Errorf("client on another contest received %+v", ev)
	}
}

// All outbound frames go through the connection's single write pump; a burst
// of publishes must arrive intact and in order.
func TestHubDeliversBurstInOrder(t *testing.T) {
	h := NewHub()
	go h.Run()

	conn := dialHub(t, h, 7)
	time.Sleep(100 * time.Millisecond)

	const events = 50
	go func() {
		for i := 0; i < events; i++ {
			h.Publish(Event{Type: "contest_update", ContestID: 7, Payload: map[string]int{"seq": i}})
			time.Sleep(2 * time.Millisecond)
		}
	}()

	for i := 0; i < events; i++ {
		ev, err := readEvent(conn, 5*time.Second)
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		payload, ok := ev.Payload.(map[string]interface{})
		if !ok {
			t.Fatalf("event %d carries no payload: %+v", i, ev)
		}
		seq, ok := payload["seq"].(float64)
		if !ok || int(seq) != i {
			t.Fatalf("event %d arrived out of order: %+v", i, ev)
		}
	}
}

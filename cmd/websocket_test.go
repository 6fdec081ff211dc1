package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"homehelpBack/internal/models"
)

// The hub loop owns every write on a registered connection, pings included.
// A client must receive both direct notifications and pings without the hub
// ever writing from a second goroutine.
func TestHubDeliversNotificationsAndPings(t *testing.T) {
	hub := NewNotificationHub(log.New(io.Discard, "", 0))
	hub.pingEvery = 20 * time.Millisecond
	go hub.Run()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.register <- wsClient{userID: "u1", conn: conn}
		close(registered)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	pinged := make(chan struct{}, 1)
	conn.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})

	msgs := make(chan []byte, 4)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				close(msgs)
				return
			}
			msgs <- data
		}
	}()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("connection never registered")
	}

	hub.SendToUser("u1", models.Notification{ID: "n1", UserID: "u1", Title: "Booking confirmed"})

	select {
	case data, ok := <-msgs:
		if !ok {
			t.Fatal("connection closed before delivery")
		}
		var got models.Notification
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.ID != "n1" || got.Title != "Booking confirmed" {
			t.Fatalf("delivered notification = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
	}

	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatal("no ping received from the hub loop")
	}
}

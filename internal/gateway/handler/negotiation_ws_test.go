package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"feastbid/internal/llm"
	"feastbid/internal/negotiation"
)

func TestNegotiationWSStreamsTranscript(t *testing.T) {
	srv := newTestServer(t, &fixedSource{bids: testBatch()}, llm.NewFakeClient())

	// The ws handler only needs an open session; no model call happens here.
	resp := postJSON(t, srv.URL+"/api/flow/request", map[string]any{"itemPref": "burger", "quantity": 1})
	resp.Body.Close()
	waitNotLoading(t, srv)
	resp = postJSON(t, srv.URL+"/api/flow/negotiate", map[string]string{"agentName": "Tasty Burger"})
	resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/negotiation/ws"
	conn, wsResp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	if wsResp != nil {
		wsResp.Body.Close()
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var subscribed negotiationWSOutbound
	if err := conn.ReadJSON(&subscribed); err != nil {
		t.Fatalf("read subscribed: %v", err)
	}
	if subscribed.Type != "subscribed" || subscribed.SessionID == "" {
		t.Fatalf("first frame = %+v, want subscribed", subscribed)
	}

	var greeting negotiationWSOutbound
	if err := conn.ReadJSON(&greeting); err != nil {
		t.Fatalf("read greeting: %v", err)
	}
	if greeting.Type != "message" || greeting.Message == nil || greeting.Message.Role != "agent" {
		t.Fatalf("greeting frame = %+v", greeting)
	}

	if err := conn.WriteJSON(negotiationWSInbound{Type: "ping"}); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	var pong negotiationWSOutbound
	if err := conn.ReadJSON(&pong); err != nil {
		t.Fatalf("read pong: %v", err)
	}
	if pong.Type != "pong" {
		t.Fatalf("frame = %+v, want pong", pong)
	}

	if err := conn.WriteJSON(negotiationWSInbound{Type: "send", Text: ""}); err != nil {
		t.Fatalf("write send: %v", err)
	}
	var errFrame negotiationWSOutbound
	if err := conn.ReadJSON(&errFrame); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if errFrame.Type != "error" || errFrame.ErrMessage == "" {
		t.Fatalf("error frame = %+v, want populated errorMessage", errFrame)
	}
}

func TestOutboundFramesCarryPayloads(t *testing.T) {
	raw, err := json.Marshal(negotiationWSOutbound{
		Type:    "message",
		Message: &negotiation.Message{Role: "agent", Text: "hello there"},
	})
	if err != nil {
		t.Fatalf("marshal message frame: %v", err)
	}
	if !strings.Contains(string(raw), "hello there") {
		t.Fatalf("message frame lost its payload: %s", raw)
	}

	raw, err = json.Marshal(negotiationWSOutbound{
		Type:       "error",
		Code:       "invalid_argument",
		ErrMessage: "text is required",
	})
	if err != nil {
		t.Fatalf("marshal error frame: %v", err)
	}
	if !strings.Contains(string(raw), "text is required") {
		t.Fatalf("error frame lost its text: %s", raw)
	}
}

func TestNegotiationWSWithoutSession(t *testing.T) {
	srv := newTestServer(t, &fixedSource{}, llm.NewFakeClient())

	resp, err := http.Get(srv.URL + "/api/negotiation/ws")
	if err != nil {
		t.Fatalf("GET ws: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

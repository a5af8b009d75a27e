package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"feastbid/internal/negotiation"
)

const (
	negotiationWSWriteWait = 10 * time.Second
	negotiationWSPongWait  = 60 * time.Second
	negotiationWSPingEvery = (negotiationWSPongWait * 9) / 10
)

var negotiationWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type negotiationWSInbound struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type negotiationWSOutbound struct {
	Type        string               `json:"type"`
	SessionID   string               `json:"sessionId,omitempty"`
	Message     *negotiation.Message `json:"message,omitempty"`
	Deal        *negotiation.Deal    `json:"deal,omitempty"`
	State       negotiation.State    `json:"state,omitempty"`
	DealChanged bool                 `json:"dealChanged,omitempty"`
	Code        string               `json:"code,omitempty"`
	ErrMessage  string               `json:"errorMessage,omitempty"`
}

// handleNegotiationWS streams the live session's transcript and deal events
// and accepts user turns over the same connection. The feed starts with a
// replay of the transcript so late subscribers see the full chat.
func (h *Handler) handleNegotiationWS(w http.ResponseWriter, r *http.Request) {
	sess, err := h.flow.Session()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if want := strings.TrimSpace(r.URL.Query().Get("session_id")); want != "" && want != sess.ID() {
		http.Error(w, "session_id mismatch", http.StatusConflict)
		return
	}

	conn, err := negotiationWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(negotiationWSPongWait)); err != nil {
		log.Printf("negotiation ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(negotiationWSPongWait))
	})

	writeCh := make(chan negotiationWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(negotiationWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(negotiationWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(negotiationWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	events := sess.Subscribe(ctx)

	pushNegotiationWS(writeCh, negotiationWSOutbound{
		Type:      "subscribed",
		SessionID: sess.ID(),
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					pushNegotiationWS(writeCh, negotiationWSOutbound{
						Type:      "closed",
						SessionID: sess.ID(),
						State:     sess.State(),
					})
					return
				}
				switch evt.Kind {
				case negotiation.EventMessage:
					pushNegotiationWS(writeCh, negotiationWSOutbound{
						Type:      "message",
						SessionID: sess.ID(),
						Message:   evt.Message,
					})
				case negotiation.EventDeal:
					pushNegotiationWS(writeCh, negotiationWSOutbound{
						Type:      "deal",
						SessionID: sess.ID(),
						Deal:      evt.Deal,
					})
				case negotiation.EventClosed:
					pushNegotiationWS(writeCh, negotiationWSOutbound{
						Type:      "closed",
						SessionID: sess.ID(),
						State:     evt.State,
					})
				}
			}
		}
	}()

	for {
		var in negotiationWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushNegotiationWS(writeCh, negotiationWSOutbound{Type: "pong"})
		case "send":
			res, sendErr := sess.Send(ctx, in.Text)
			if sendErr != nil {
				pushNegotiationWS(writeCh, negotiationWSOutbound{
					Type:       "error",
					Code:       wsErrorCode(sendErr),
					ErrMessage: sendErr.Error(),
				})
				continue
			}
			pushNegotiationWS(writeCh, negotiationWSOutbound{
				Type:        "send_ack",
				SessionID:   sess.ID(),
				Deal:        &res.Deal,
				DealChanged: res.DealChanged,
			})
		default:
			pushNegotiationWS(writeCh, negotiationWSOutbound{
				Type:       "error",
				Code:       "invalid_argument",
				ErrMessage: "unsupported type: " + in.Type,
			})
		}
	}
}

func wsErrorCode(err error) string {
	switch err {
	case negotiation.ErrEmptyMessage:
		return "invalid_argument"
	case negotiation.ErrBusy:
		return "busy"
	case negotiation.ErrClosed:
		return "closed"
	default:
		return "internal"
	}
}

// pushNegotiationWS delivers without blocking: if the buffer is full the
// oldest event is dropped to make room.
func pushNegotiationWS(writeCh chan negotiationWSOutbound, out negotiationWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}

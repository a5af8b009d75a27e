// Package handler exposes the order flow over HTTP/JSON.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"feastbid/internal/bid"
	"feastbid/internal/catalog"
	"feastbid/internal/negotiation"
	"feastbid/internal/orderflow"
	"feastbid/internal/types"
)

type Handler struct {
	flow *orderflow.Controller
}

func New(flow *orderflow.Controller) *Handler {
	return &Handler{flow: flow}
}

// Routes mounts every endpoint on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog/inspirations", h.handleInspirations)
		r.Get("/catalog/agents", h.handleAgents)

		r.Get("/flow", h.handleFlowSnapshot)
		r.Post("/flow/navigate", h.handleNavigate)
		r.Post("/flow/inspiration", h.handleInspirationPick)
		r.Post("/flow/request", h.handleSubmitRequest)
		r.Post("/flow/select", h.handleSelectBid)
		r.Post("/flow/negotiate", h.handleNegotiateBid)
		r.Post("/flow/checkout", h.handleCheckout)

		r.Get("/bids", h.handleBids)

		r.Post("/negotiation/message", h.handleNegotiationMessage)
		r.Post("/negotiation/accept", h.handleNegotiationAccept)
		r.Post("/negotiation/abandon", h.handleNegotiationAbandon)
		r.Get("/negotiation/ws", h.handleNegotiationWS)

		r.Get("/orders", h.handleOrders)
		r.Get("/orders/{id}/tracking", h.handleTracking)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "feastbid"})
}

func (h *Handler) handleInspirations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Inspirations)
}

func (h *Handler) handleAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.AllAgents())
}

func (h *Handler) handleFlowSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Screen orderflow.Screen `json:"screen"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.flow.NavigateTo(req.Screen); err != nil {
		status := http.StatusConflict
		if errors.Is(err, orderflow.ErrUnknownScreen) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleInspirationPick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pref string `json:"pref"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.flow.StartWithInspiration(req.Pref)
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req types.RequestConstraints
	if !decode(w, r, &req) {
		return
	}
	// Generation outlives this request; detach it from the request context.
	h.flow.SubmitRequest(context.WithoutCancel(r.Context()), req)
	writeJSON(w, http.StatusAccepted, h.flow.Snapshot())
}

func (h *Handler) handleBids(w http.ResponseWriter, r *http.Request) {
	mode := bid.SortMode(r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, h.flow.Bids(mode))
}

func (h *Handler) handleSelectBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AgentName string `json:"agentName"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.flow.SelectBid(req.AgentName); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleNegotiateBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AgentName string `json:"agentName"`
	}
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.flow.NegotiateBid(req.AgentName)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":  sess.ID(),
		"deal":       sess.Deal(),
		"transcript": sess.Transcript(),
	})
}

func (h *Handler) handleNegotiationMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}
	sess, err := h.flow.Session()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	res, err := sess.Send(r.Context(), req.Text)
	switch {
	case errors.Is(err, negotiation.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, negotiation.ErrBusy):
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case errors.Is(err, negotiation.ErrClosed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reply":       res.Reply,
		"deal":        res.Deal,
		"dealChanged": res.DealChanged,
	})
}

func (h *Handler) handleNegotiationAccept(w http.ResponseWriter, r *http.Request) {
	if err := h.flow.AcceptNegotiation(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleNegotiationAbandon(w http.ResponseWriter, r *http.Request) {
	h.flow.AbandonNegotiation()
	writeJSON(w, http.StatusOK, h.flow.Snapshot())
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	order, err := h.flow.Checkout()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.flow.Orders())
}

func (h *Handler) handleTracking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := h.flow.OrderByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, orderflow.Track(order, time.Now()))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"roamsync/internal"
	"roamsync/subscription"
	"time"

	"github.com/julienschmidt/httprouter"
)

const featureName = "Api"

// SubscriptionService is the part of the sync system the protocol
// endpoints operate on.
type SubscriptionService interface {
	OpenSubscription(request subscription.Request, endpoint, token string) (string, subscription.Response, error)
	Propose(id string, proposal subscription.Proposal) error
	Renegotiate(id string, status subscription.RenegotiationStatus) error
	Cancel(id string, reason subscription.CancelReason) error
	SubscriptionState(id string) (subscription.State, bool)
}

// LogReader serves the operational log over the API.
type LogReader interface {
	ReadLog() (interface{}, error)
}

type Handler struct {
	logger    internal.LogHandler
	service   SubscriptionService
	logReader LogReader
}

func NewHandler(service SubscriptionService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SetLogger(logger internal.LogHandler) {
	h.logger = logger
}

func (h *Handler) SetLogReader(reader LogReader) {
	h.logReader = reader
}

func (h *Handler) Register(router *httprouter.Router) {
	router.POST("/subscriptions", h.handleOpen)
	router.PUT("/subscriptions/:id", h.handlePropose)
	router.POST("/subscriptions/:id/renegotiate", h.handleRenegotiate)
	router.DELETE("/subscriptions/:id", h.handleCancel)
	router.GET("/subscriptions/:id", h.handleState)
	router.GET("/log", h.handleLog)
}

// openRequest is flattened by hand because the embedded parameter
// set's own json codec would swallow the endpoint fields.
type openRequest struct {
	RetryInterval    int64  `json:"retry_interval"`
	MaxQueueSize     uint   `json:"max_queue_size"`
	ParallelismLimit *uint  `json:"parallelism_limit,omitempty"`
	Endpoint         string `json:"endpoint"`
	Token            string `json:"token"`
}

func (r openRequest) parameters() subscription.Parameters {
	return subscription.Parameters{
		RetryInterval:    time.Duration(r.RetryInterval) * time.Second,
		MaxQueueSize:     r.MaxQueueSize,
		ParallelismLimit: r.ParallelismLimit,
	}
}

type openResponse struct {
	Id           string `json:"id"`
	MaxQueueSize uint   `json:"max_queue_size"`
}

type renegotiateRequest struct {
	Status subscription.RenegotiationStatus `json:"status"`
}

type cancelRequest struct {
	Reason subscription.CancelReason `json:"reason"`
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body openRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Endpoint == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing receiver endpoint"))
		return
	}
	id, response, err := h.service.OpenSubscription(subscription.Request{Parameters: body.parameters()}, body.Endpoint, body.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.event(id, "subscription opened")
	writeJSON(w, http.StatusCreated, openResponse{Id: id, MaxQueueSize: response.MaxQueueSize})
}

func (h *Handler) handlePropose(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	var parameters subscription.Parameters
	if err := json.NewDecoder(r.Body).Decode(&parameters); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.service.Propose(id, subscription.Proposal{Parameters: parameters}); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.event(id, "parameter proposal received")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRenegotiate(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	var body renegotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Status != subscription.RenegotiationAccepted && body.Status != subscription.RenegotiationRejected {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown renegotiation status %q", body.Status))
		return
	}
	if err := h.service.Renegotiate(id, body.Status); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.event(id, fmt.Sprintf("renegotiation %s", body.Status))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	body := cancelRequest{Reason: subscription.ReasonOther}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	switch body.Reason {
	case subscription.ReasonQueueOverflow, subscription.ReasonDataNoLongerAvail, subscription.ReasonOther:
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown cancel reason %q", body.Reason))
		return
	}
	if err := h.service.Cancel(id, body.Reason); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	h.event(id, fmt.Sprintf("cancelled with reason %s", body.Reason))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleState(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	state, ok := h.service.SubscriptionState(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown subscription %s", id))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleLog(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if h.logReader == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("log storage not configured"))
		return
	}
	messages, err := h.logReader.ReadLog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) event(id, text string) {
	if h.logger != nil {
		h.logger.FeatureEvent(featureName, id, text)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/interview"
	"github.com/elga-energy/axiom/internal/tracking"
	"github.com/go-chi/chi/v5"
)

// AxiomHandler exposes the interview orchestrator over HTTP.
type AxiomHandler struct {
	svc     *interview.Service
	tracker *tracking.Tracker
}

// NewAxiomHandler creates the interview API handler.
func NewAxiomHandler(svc *interview.Service, tracker *tracking.Tracker) *AxiomHandler {
	return &AxiomHandler{svc: svc, tracker: tracker}
}

// RegisterRoutes registers the interview and tracking routes.
func (h *AxiomHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/axiom", func(r chi.Router) {
		r.Post("/sessions", h.InitSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Post("/messages", h.SendMessage)
			r.Post("/next-bloc", h.NextBloc)
			r.Post("/synthesis", h.GenerateSynthesis)
			r.Get("/matching", h.GetMatchingResult)
			r.Post("/feedback", h.SendFeedback)
		})
	})
	r.Post("/api/tracking", h.TrackBehavior)
}

// InitSession creates a new candidate session.
func (h *AxiomHandler) InitSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.InitSession(r.Context(), req.Email, req.Name)
	if err != nil {
		slog.Error("failed to init session", "error", err)
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, result)
}

// GetSession returns a session and its interview history.
func (h *AxiomHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, view)
}

// SendMessage handles one candidate turn.
func (h *AxiomHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.SendMessage(r.Context(), chi.URLParam(r, "sessionID"), req.Message)
	if err != nil {
		slog.Error("failed to process message", "session_id", chi.URLParam(r, "sessionID"), "error", err)
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// NextBloc advances the session to the next bloc.
func (h *AxiomHandler) NextBloc(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.NextBloc(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		slog.Error("failed to advance bloc", "session_id", chi.URLParam(r, "sessionID"), "error", err)
		writeServiceError(w, err)
		return
	}

	if result.Completion != nil {
		JSON(w, http.StatusOK, result.Completion)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"blocNum":     result.BlocNum,
		"blocMessage": result.BlocMessage,
	})
}

// GenerateSynthesis triggers synthesis and matching generation.
func (h *AxiomHandler) GenerateSynthesis(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GenerateSynthesis(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		slog.Error("failed to generate synthesis", "session_id", chi.URLParam(r, "sessionID"), "error", err)
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// GetMatchingResult returns the matching verdict.
func (h *AxiomHandler) GetMatchingResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetMatchingResult(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"result": result})
}

// SendFeedback records candidate feedback after completion.
func (h *AxiomHandler) SendFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.SendFeedback(r.Context(), chi.URLParam(r, "sessionID"), req.Feedback); err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TrackBehavior records a behavior event. Tracking never validates session
// existence and always acknowledges known event types.
func (h *AxiomHandler) TrackBehavior(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string         `json:"sessionId"`
		EventType string         `json:"eventType"`
		EventData map[string]any `json:"eventData"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eventType := domain.EventType(req.EventType)
	if !domain.ValidEventType(eventType) {
		Error(w, http.StatusBadRequest, "Unknown event type")
		return
	}

	h.tracker.Record(r.Context(), req.SessionID, eventType, req.EventData)

	JSON(w, http.StatusOK, map[string]bool{"success": true})
}

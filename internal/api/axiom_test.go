package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/interview"
	"github.com/elga-energy/axiom/internal/llm"
	"github.com/elga-energy/axiom/internal/notify"
	"github.com/elga-energy/axiom/internal/store"
	"github.com/elga-energy/axiom/internal/tracking"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T, provider llm.Provider) (*httptest.Server, *store.MemoryStore) {
	t.Helper()

	repo := store.NewMemory()
	tracker := tracking.New(repo)
	svc := interview.NewService(repo, provider, tracker, notify.New(repo), 0)

	r := chi.NewRouter()
	NewAxiomHandler(svc, tracker).RegisterRoutes(r)
	NewHealthHandler(repo, "mock").RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/axiom/sessions", map[string]string{
		"email": "candidate@example.com",
		"name":  "Claire",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}

	var result struct {
		SessionID      string `json:"sessionId"`
		InitialMessage string `json:"initialMessage"`
	}
	decodeJSON(t, resp, &result)
	if result.SessionID == "" {
		t.Fatal("empty session id")
	}
	return result.SessionID
}

func TestInitSessionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())

	resp := postJSON(t, srv.URL+"/api/axiom/sessions", map[string]string{
		"email": "candidate@example.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var result struct {
		SessionID      string `json:"sessionId"`
		InitialMessage string `json:"initialMessage"`
	}
	decodeJSON(t, resp, &result)
	if !strings.Contains(result.InitialMessage, "AXIOM") {
		t.Errorf("initial message = %q", result.InitialMessage)
	}
}

func TestInitSessionEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())

	resp := postJSON(t, srv.URL+"/api/axiom/sessions", map[string]string{"email": "not-an-email"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	raw, err := http.Post(srv.URL+"/api/axiom/sessions", "application/json", strings.NewReader("{broken"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", raw.StatusCode)
	}
	raw.Body.Close()
}

func TestGetSessionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())
	sessionID := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/api/axiom/sessions/" + sessionID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var view struct {
		Session struct {
			SessionID   string `json:"sessionId"`
			Phase       string `json:"phase"`
			CurrentBloc int    `json:"currentBloc"`
		} `json:"session"`
		History []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"history"`
	}
	decodeJSON(t, resp, &view)
	if view.Session.Phase != "axiom" || view.Session.CurrentBloc != 1 {
		t.Errorf("session = %+v", view.Session)
	}
	if len(view.History) != 1 || view.History[0].Role != "assistant" {
		t.Errorf("history = %+v", view.History)
	}
}

func TestGetSessionEndpointNotFound(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())

	resp, err := http.Get(srv.URL + "/api/axiom/sessions/unknown")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSendMessageEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())
	sessionID := createSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/messages", map[string]string{
		"message": "Je suis prêt",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		Message     string `json:"message"`
		CurrentBloc int    `json:"currentBloc"`
	}
	decodeJSON(t, resp, &result)
	if result.CurrentBloc != 1 {
		t.Errorf("currentBloc = %d, want 1", result.CurrentBloc)
	}
	if !strings.Contains(result.Message, "BLOC 1") {
		t.Errorf("first reply should be a bloc 1 question, got %q", result.Message)
	}
}

func TestSendMessageEndpointProviderFailure(t *testing.T) {
	provider := llm.NewMockProvider()
	srv, repo := newTestServer(t, provider)
	sessionID := createSession(t, srv)

	// Move to an unscripted bloc and make the provider fail.
	six := 6
	if _, err := repo.UpdateSession(context.Background(), sessionID, store.SessionUpdate{CurrentBloc: &six}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	provider.QueueError(&llm.ErrRateLimited{Err: errors.New("429")})

	resp := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/messages", map[string]string{
		"message": "ma réponse",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &body)
	if !strings.Contains(body.Error, "Limite de taux") {
		t.Errorf("error = %q, want rate-limit user message", body.Error)
	}
}

func TestNextBlocEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())
	sessionID := createSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/next-bloc", map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		BlocNum     int    `json:"blocNum"`
		BlocMessage string `json:"blocMessage"`
	}
	decodeJSON(t, resp, &result)
	if result.BlocNum != 2 || !strings.Contains(result.BlocMessage, "BLOC 2") {
		t.Errorf("result = %+v", result)
	}
}

func TestNextBlocEndpointCompletion(t *testing.T) {
	provider := llm.NewMockProvider("SYNTHÈSE", "VERDICT: GO")
	srv, repo := newTestServer(t, provider)
	sessionID := createSession(t, srv)

	nine := 9
	if _, err := repo.UpdateSession(context.Background(), sessionID, store.SessionUpdate{CurrentBloc: &nine}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	resp := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/next-bloc", map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result struct {
		Synthesis      string `json:"synthesis"`
		MatchingResult string `json:"matchingResult"`
		Phase          string `json:"phase"`
	}
	decodeJSON(t, resp, &result)
	if result.Phase != "completed" || result.MatchingResult != "VERDICT: GO" {
		t.Errorf("result = %+v", result)
	}
}

func TestMatchingEndpoint(t *testing.T) {
	provider := llm.NewMockProvider("SYNTHÈSE", "VERDICT: GO")
	srv, _ := newTestServer(t, provider)
	sessionID := createSession(t, srv)

	resp, err := http.Get(srv.URL + "/api/axiom/sessions/" + sessionID + "/matching")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("before completion status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	synth := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/synthesis", map[string]string{})
	if synth.StatusCode != http.StatusOK {
		t.Fatalf("synthesis status = %d, want 200", synth.StatusCode)
	}
	synth.Body.Close()

	resp, err = http.Get(srv.URL + "/api/axiom/sessions/" + sessionID + "/matching")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("after completion status = %d, want 200", resp.StatusCode)
	}
	var result struct {
		Result string `json:"result"`
	}
	decodeJSON(t, resp, &result)
	if result.Result != "VERDICT: GO" {
		t.Errorf("result = %q", result.Result)
	}
}

func TestFeedbackEndpoint(t *testing.T) {
	srv, repo := newTestServer(t, llm.NewMockProvider())
	sessionID := createSession(t, srv)

	resp := postJSON(t, srv.URL+"/api/axiom/sessions/"+sessionID+"/feedback", map[string]string{
		"feedback": "merci pour le verdict",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	history, _ := repo.GetHistory(context.Background(), sessionID, domain.PhaseMatching)
	if len(history) != 1 || !strings.HasPrefix(history[0].Content, "[FEEDBACK] ") {
		t.Errorf("matching history = %+v", history)
	}
}

func TestTrackingEndpoint(t *testing.T) {
	srv, repo := newTestServer(t, llm.NewMockProvider())

	resp := postJSON(t, srv.URL+"/api/tracking", map[string]any{
		"sessionId": "never-created",
		"eventType": "scroll",
		"eventData": map[string]any{"depth": 80},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	decodeJSON(t, resp, &ack)
	if !ack.Success {
		t.Error("expected success acknowledgement")
	}

	events := repo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventScroll {
		t.Errorf("events = %+v", events)
	}
}

func TestTrackingEndpointUnknownType(t *testing.T) {
	srv, repo := newTestServer(t, llm.NewMockProvider())

	resp := postJSON(t, srv.URL+"/api/tracking", map[string]any{
		"sessionId": "s1",
		"eventType": "keylogger",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	if len(repo.Events()) != 0 {
		t.Error("unknown event type should not be stored")
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, llm.NewMockProvider())

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health struct {
		Status  string `json:"status"`
		LLMMode string `json:"llm_mode"`
	}
	decodeJSON(t, resp, &health)
	if health.Status != "ok" || health.LLMMode != "mock" {
		t.Errorf("health = %+v", health)
	}
}

package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *Manager) {
	t.Helper()
	m, _ := newManager(t)
	r := chi.NewRouter()
	RegisterRoutes(r, m)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, m
}

func TestSessionRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat/sessions", "application/json", strings.NewReader(`{"persona":"backend-architect"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var st State
	json.NewDecoder(resp.Body).Decode(&st)
	if st.PersonaID != "backend-architect" || st.ID == "" {
		t.Fatalf("created state = %+v", st)
	}

	resp2, err := http.Post(srv.URL+"/api/chat/sessions/"+st.ID+"/messages", "application/json", strings.NewReader(`{"content":"scale it"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("send status = %d", resp2.StatusCode)
	}
	var msg Message
	json.NewDecoder(resp2.Body).Decode(&msg)
	if msg.Content != "echo: scale it" {
		t.Errorf("reply = %q", msg.Content)
	}

	resp3, err := http.Post(srv.URL+"/api/chat/sessions/"+st.ID+"/messages", "application/json", strings.NewReader(`{"content":""}`))
	if err != nil {
		t.Fatal(err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("empty prompt status = %d, want 400", resp3.StatusCode)
	}

	resp4, err := http.Get(srv.URL + "/api/chat/sessions/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp4.Body.Close()
	if resp4.StatusCode != http.StatusNotFound {
		t.Errorf("missing session status = %d, want 404", resp4.StatusCode)
	}
}

func TestWebSocketChat(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := ws.WriteJSON(wsRequest{Type: "persona", ID: "python-guru"}); err != nil {
		t.Fatal(err)
	}
	var state wsResponse
	if err := ws.ReadJSON(&state); err != nil {
		t.Fatal(err)
	}
	if state.Type != "state" || state.State == nil || state.State.PersonaID != "python-guru" {
		t.Fatalf("state response = %+v", state)
	}

	if err := ws.WriteJSON(wsRequest{Type: "message", SessionID: state.SessionID, Content: "hi"}); err != nil {
		t.Fatal(err)
	}
	var reply wsResponse
	if err := ws.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Type != "response" || reply.Content != "echo: hi" || reply.SessionID != state.SessionID {
		t.Errorf("reply = %+v", reply)
	}

	if err := ws.WriteJSON(wsRequest{Type: "bogus", SessionID: state.SessionID}); err != nil {
		t.Fatal(err)
	}
	var bad wsResponse
	if err := ws.ReadJSON(&bad); err != nil {
		t.Fatal(err)
	}
	if bad.Type != "error" {
		t.Errorf("unknown type response = %+v", bad)
	}
}

// Package testutil provides fakes shared by package tests.
package testutil

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/oh-my-claude/menubar/internal/models"
)

// Call records one request received by a FakeProxy.
type Call struct {
	Method  string
	Path    string
	Session string
	Body    models.SwitchRequest
}

// FakeProxy serves the proxy control API for any number of sessions on a
// single loopback port.
type FakeProxy struct {
	server *httptest.Server

	mu         sync.Mutex
	status     map[string]models.StatusResponse
	failStatus bool
	failHealth bool
	failSwitch bool
	calls      []Call
}

// NewFakeProxy starts a fake control API that is closed when the test ends.
func NewFakeProxy(t testing.TB) *FakeProxy {
	t.Helper()
	p := &FakeProxy{status: make(map[string]models.StatusResponse)}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", onlyMethod(http.MethodGet, p.handleHealth))
	mux.HandleFunc("/status", onlyMethod(http.MethodGet, p.handleStatus))
	mux.HandleFunc("/switch", onlyMethod(http.MethodPost, p.handleSwitch))
	mux.HandleFunc("/revert", onlyMethod(http.MethodPost, p.handleRevert))

	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)
	return p
}

// onlyMethod restricts h to one HTTP method, matching the behavior of a
// "METHOD /path" ServeMux pattern (GET also admits HEAD).
func onlyMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
			allow := method
			if method == http.MethodGet {
				allow += ", " + http.MethodHead
			}
			w.Header().Set("Allow", allow)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// Port returns the control port the fake listens on.
func (p *FakeProxy) Port() int {
	_, port, _ := net.SplitHostPort(p.server.Listener.Addr().String())
	n, _ := strconv.Atoi(port)
	return n
}

// Close shuts the server down so further calls are refused.
func (p *FakeProxy) Close() {
	p.server.Close()
}

// SetStatus sets the /status answer for a session.
func (p *FakeProxy) SetStatus(sessionID string, st models.StatusResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[sessionID] = st
}

// FailStatus makes /status answer 500.
func (p *FakeProxy) FailStatus(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failStatus = fail
}

// FailHealth makes /health answer 500.
func (p *FakeProxy) FailHealth(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failHealth = fail
}

// FailSwitch makes /switch and /revert answer 500.
func (p *FakeProxy) FailSwitch(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failSwitch = fail
}

// Calls returns a copy of the recorded requests.
func (p *FakeProxy) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallsTo returns the recorded requests for one path.
func (p *FakeProxy) CallsTo(path string) []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (p *FakeProxy) record(r *http.Request, body models.SwitchRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{
		Method:  r.Method,
		Path:    r.URL.Path,
		Session: r.URL.Query().Get("session"),
		Body:    body,
	})
}

func (p *FakeProxy) handleHealth(w http.ResponseWriter, r *http.Request) {
	p.record(r, models.SwitchRequest{})
	p.mu.Lock()
	fail := p.failHealth
	p.mu.Unlock()
	if fail {
		http.Error(w, `{"error":"unavailable"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, models.HealthResponse{Status: "ok", Uptime: 42, UptimeHuman: "42s"})
}

func (p *FakeProxy) handleStatus(w http.ResponseWriter, r *http.Request) {
	p.record(r, models.SwitchRequest{})
	session := r.URL.Query().Get("session")
	p.mu.Lock()
	fail := p.failStatus
	st := p.status[session]
	p.mu.Unlock()
	if fail {
		http.Error(w, `{"error":"unavailable"}`, http.StatusInternalServerError)
		return
	}
	st.SessionID = session
	writeJSON(w, st)
}

func (p *FakeProxy) handleSwitch(w http.ResponseWriter, r *http.Request) {
	var body models.SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad body"}`, http.StatusBadRequest)
		return
	}
	p.record(r, body)
	session := r.URL.Query().Get("session")

	p.mu.Lock()
	fail := p.failSwitch
	if !fail {
		p.status[session] = models.StatusResponse{Switched: true, Provider: body.Provider, Model: body.Model}
	}
	p.mu.Unlock()
	if fail {
		http.Error(w, `{"error":"switch failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, models.SwitchResponse{
		Switched:  true,
		Provider:  body.Provider,
		Model:     body.Model,
		SessionID: session,
		Message:   "switched",
	})
}

func (p *FakeProxy) handleRevert(w http.ResponseWriter, r *http.Request) {
	p.record(r, models.SwitchRequest{})
	session := r.URL.Query().Get("session")

	p.mu.Lock()
	fail := p.failSwitch
	if !fail {
		p.status[session] = models.StatusResponse{}
	}
	p.mu.Unlock()
	if fail {
		http.Error(w, `{"error":"revert failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, models.SwitchResponse{Switched: false, SessionID: session, Message: "reverted"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

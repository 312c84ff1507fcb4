// Package models contains shared data structures used across the application.
package models

// RegistryEntry is one proxy session as written by the proxy into
// ~/.claude/oh-my-claude/proxy-sessions.json. It is never modified here.
type RegistryEntry struct {
	SessionID   string `json:"sessionId"`
	Port        int    `json:"port"`
	ControlPort int    `json:"controlPort"`
	PID         int    `json:"pid"`
	StartedAt   int64  `json:"startedAt"` // Unix millis
	Cwd         string `json:"cwd,omitempty"`
}

// SessionView is a registry entry enriched with live status from the
// session's control API. Recomputed on every reconciliation pass.
type SessionView struct {
	SessionID   string `json:"sessionId"`
	Port        int    `json:"port"`
	ControlPort int    `json:"controlPort"`
	PID         int    `json:"pid"`
	StartedAt   int64  `json:"startedAt"`
	Cwd         string `json:"cwd,omitempty"`
	ProjectName string `json:"projectName"`
	Switched    bool   `json:"switched"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
	Healthy     bool   `json:"healthy"`
}

// NewSessionView copies the registry fields of entry into a view.
// Status fields are left zero.
func NewSessionView(entry RegistryEntry, projectName string) SessionView {
	return SessionView{
		SessionID:   entry.SessionID,
		Port:        entry.Port,
		ControlPort: entry.ControlPort,
		PID:         entry.PID,
		StartedAt:   entry.StartedAt,
		Cwd:         entry.Cwd,
		ProjectName: projectName,
	}
}

// Normalize drops status claims from unhealthy views.
func (v *SessionView) Normalize() {
	if v.Healthy {
		return
	}
	v.Switched = false
	v.Provider = ""
	v.Model = ""
}

// CurrentModel returns "provider/model" for switched sessions, or fallback.
func (v SessionView) CurrentModel(fallback string) string {
	if !v.Switched {
		return fallback
	}
	provider, model := v.Provider, v.Model
	if provider == "" {
		provider = "?"
	}
	if model == "" {
		model = "?"
	}
	return provider + "/" + model
}

// ShortID returns the first 8 characters of the session ID.
func (v SessionView) ShortID() string {
	r := []rune(v.SessionID)
	if len(r) > 8 {
		return string(r[:8])
	}
	return v.SessionID
}

package models

// HealthResponse is the body of GET /health on a session's control port.
type HealthResponse struct {
	Status         string `json:"status"`
	Uptime         int64  `json:"uptime,omitempty"`
	UptimeHuman    string `json:"uptimeHuman,omitempty"`
	RequestCount   int64  `json:"requestCount,omitempty"`
	ActiveSessions int    `json:"activeSessions,omitempty"`
}

// StatusResponse is the body of GET /status?session=<id>.
type StatusResponse struct {
	Switched   bool   `json:"switched"`
	Provider   string `json:"provider,omitempty"`
	Model      string `json:"model,omitempty"`
	SwitchedAt int64  `json:"switchedAt,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
}

// SwitchRequest is the body of POST /switch?session=<id>.
type SwitchRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// SwitchResponse is the body returned by both /switch and /revert.
type SwitchResponse struct {
	Switched  bool   `json:"switched"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

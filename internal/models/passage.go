package models

import "time"

// Passage is a retrieved corpus fragment with its similarity score
type Passage struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Score  float32 `json:"score"`
	Source string  `json:"source,omitempty"`
}

// PassageRecord is a corpus fragment prepared for indexing
type PassageRecord struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// AskRequest is the inbound /chat payload
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the successful /chat payload
type AskResponse struct {
	Success          bool   `json:"success"`
	Answer           string `json:"answer"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	RequestID        string `json:"request_id"`
}

// ErrorResponse is the failure /chat payload
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// AuditEntry records one LLM operation for the audit log
type AuditEntry struct {
	ID        string    `badgerhold:"key" json:"id"`
	Timestamp time.Time `badgerholdIndex:"Timestamp" json:"timestamp"`
	Operation string    `json:"operation"`
	Model     string    `json:"model"`
	Attempt   int       `json:"attempt"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Duration  int64     `json:"duration_ms"`
	Prompt    string    `json:"prompt,omitempty"`
}

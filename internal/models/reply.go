package models

// ReplyRequest is the body of POST /generate-reply
type ReplyRequest struct {
	ClientSequence string    `json:"clientSequence"`
	ChatHistory    []Message `json:"chatHistory"`
}

// ReplyResponse is the decoded body of a successful /generate-reply call
type ReplyResponse struct {
	// AIReply is empty when the service returned no reply to display
	AIReply string `json:"aiReply,omitempty"`
	// Raw holds the undecoded response body
	Raw string `json:"-"`
}

// HasReply reports whether the response carries text to append
func (r *ReplyResponse) HasReply() bool {
	return r != nil && r.AIReply != ""
}

// HealthStatus is the decoded body of GET /health
type HealthStatus struct {
	Status string `json:"status"`
}

// OK reports whether the service described itself as healthy
func (h HealthStatus) OK() bool {
	return h.Status == "ok"
}

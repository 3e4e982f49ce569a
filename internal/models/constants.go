// Package models contains data types and constants for the DTV reply service.
package models

// Reply service endpoints, relative to the configured backend URL
const (
	PathGenerateReply = "/generate-reply"
	PathHealth        = "/health"
)

// DefaultHeaders returns the headers sent with every JSON request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "dtvchat",
	}
}

// Copy shown by the chat view
const (
	AppTitle    = "DTV Assistant"
	AppTag      = "BETA"
	AppSubtitle = "Thailand Visa Consulting • Powered by AI"
	AppFooter   = "Confidential & Professional Thai Visa Consulting"

	WelcomeTitle       = "How can we help you today?"
	WelcomeDescription = "Ask any questions about the Destination Thailand Visa (DTV), requirements, or the application process."

	InputPlaceholder = "Type your question about Thailand DTV..."
	TypingIndicator  = "Assistant is typing..."
)

// suggestions are the example prompts offered while the transcript is empty
var suggestions = []string{
	"What is DTV?",
	"Requirements for Remote Workers",
	"How long is processing?",
}

// Suggestions returns a copy of the fixed example prompts
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

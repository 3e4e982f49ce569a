// Package chat holds the state of one chat session with the consultant
// service: the transcript, the uncommitted input, and whether a reply is
// awaited.
//
// Session is not safe for concurrent use. It is driven from a single
// goroutine, normally the Bubble Tea update loop, while the network call
// runs elsewhere. A submission is split into Begin, which commits the
// client message and returns the request to send, and Complete, which
// applies the result.
package chat

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/logging"
	"github.com/diogo/dtvchat/internal/models"
)

// Replier produces a consultant reply for a client message and the prior
// transcript
type Replier interface {
	GenerateReply(ctx context.Context, clientSequence string, history []models.Message) (*models.ReplyResponse, error)
}

// Exchange is one submitted message waiting for its reply
type Exchange struct {
	// ClientSequence is the trimmed text that was submitted
	ClientSequence string
	// ChatHistory is the transcript as it was before ClientSequence was added
	ChatHistory []models.Message

	generation uint64
}

// Outcome describes what Complete did with a result
type Outcome struct {
	// Appended is the consultant message added to the transcript, if any
	Appended *models.Message
	// Err is the failure to surface to the user, if any
	Err error
	// Discarded is set when the result arrived for a stale or closed session
	Discarded bool
}

// Session is the in-memory state of one conversation
type Session struct {
	transcript    []models.Message
	pendingInput  string
	awaitingReply bool

	// generation is bumped by Close so results of abandoned exchanges
	// are recognised and dropped
	generation uint64
	closed     bool

	logger *zap.Logger
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger for lifecycle events
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logging.OrNop(logger)
	}
}

// NewSession creates an empty session
func NewSession(opts ...Option) *Session {
	s := &Session{
		transcript: []models.Message{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts a submission of text.
//
// It returns false, changing nothing, when the trimmed text is empty, a
// reply is already awaited, or the session is closed. Otherwise it clears
// the pending input, appends the client message, marks the session as
// awaiting, and returns the exchange to send. The exchange history does not
// contain the new message.
func (s *Session) Begin(text string) (Exchange, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || s.awaitingReply || s.closed {
		return Exchange{}, false
	}

	s.pendingInput = ""
	history := models.CloneMessages(s.transcript)
	s.transcript = append(s.transcript, models.NewClientMessage(trimmed))
	s.awaitingReply = true

	s.logger.Debug("submit",
		zap.Int("history_len", len(history)),
		zap.Int("text_len", len(trimmed)),
	)

	return Exchange{
		ClientSequence: trimmed,
		ChatHistory:    history,
		generation:     s.generation,
	}, true
}

// Complete applies the result of ex.
//
// A non-empty reply is appended as a consultant message. On error the
// transcript is left as is and the error is returned in the outcome.
// Either way the session stops awaiting. Results for a closed session or
// an older generation are discarded without touching any state.
func (s *Session) Complete(ex Exchange, reply string, err error) Outcome {
	if s.closed || ex.generation != s.generation {
		s.logger.Debug("late reply discarded", zap.Uint64("generation", ex.generation))
		return Outcome{Discarded: true}
	}

	defer func() { s.awaitingReply = false }()

	if err != nil {
		s.logger.Warn("reply failed",
			zap.String("kind", apierrors.Kind(err)),
			zap.Error(err),
		)
		return Outcome{Err: err}
	}

	if reply == "" {
		s.logger.Debug("empty reply")
		return Outcome{}
	}

	msg := models.NewConsultantMessage(reply)
	s.transcript = append(s.transcript, msg)
	s.logger.Debug("reply appended", zap.Int("transcript_len", len(s.transcript)))
	return Outcome{Appended: &msg}
}

// CompleteResponse is Complete for a reply service response
func (s *Session) CompleteResponse(ex Exchange, resp *models.ReplyResponse, err error) Outcome {
	var reply string
	if err == nil && resp.HasReply() {
		reply = resp.AIReply
	}
	return s.Complete(ex, reply, err)
}

// Submit runs a whole exchange synchronously: Begin, one call to replier,
// Complete. ok is false when Begin rejected the text; no call is made then.
func (s *Session) Submit(ctx context.Context, replier Replier, text string) (Outcome, bool) {
	ex, ok := s.Begin(text)
	if !ok {
		return Outcome{}, false
	}

	resp, err := replier.GenerateReply(ctx, ex.ClientSequence, ex.ChatHistory)
	return s.CompleteResponse(ex, resp, err), true
}

// SetPendingInput replaces the uncommitted input text
func (s *Session) SetPendingInput(text string) {
	s.pendingInput = text
}

// SelectSuggestion prefills the input with a suggestion prompt
func (s *Session) SelectSuggestion(text string) {
	s.SetPendingInput(text)
}

// SuggestionAt selects the i-th fixed suggestion. It reports false when
// suggestions are not offered (non-empty transcript) or i is out of range.
func (s *Session) SuggestionAt(i int) (string, bool) {
	suggestions := models.Suggestions()
	if !s.IsEmpty() || i < 0 || i >= len(suggestions) {
		return "", false
	}
	s.SelectSuggestion(suggestions[i])
	return suggestions[i], true
}

// CanSubmit reports whether the pending input would be accepted
func (s *Session) CanSubmit() bool {
	return strings.TrimSpace(s.pendingInput) != "" && !s.awaitingReply && !s.closed
}

// Close tears the session down. Results of in-flight exchanges are dropped.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.generation++
	s.awaitingReply = false
}

// Closed reports whether Close was called
func (s *Session) Closed() bool {
	return s.closed
}

// Transcript returns a copy of the messages, oldest first
func (s *Session) Transcript() []models.Message {
	return models.CloneMessages(s.transcript)
}

// Len returns the number of messages in the transcript
func (s *Session) Len() int {
	return len(s.transcript)
}

// IsEmpty reports whether no message has been exchanged yet
func (s *Session) IsEmpty() bool {
	return len(s.transcript) == 0
}

// AwaitingReply reports whether a request is outstanding
func (s *Session) AwaitingReply() bool {
	return s.awaitingReply
}

// PendingInput returns the uncommitted input text
func (s *Session) PendingInput() string {
	return s.pendingInput
}

// LastReply returns the most recent consultant message text
func (s *Session) LastReply() (string, bool) {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == models.RoleConsultant {
			return s.transcript[i].Text, true
		}
	}
	return "", false
}

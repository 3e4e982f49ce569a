package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/models"
)

// GenerateReply posts clientSequence and the prior transcript to
// /generate-reply. history must not include clientSequence itself.
//
// Errors are typed: configuration (no base URL), transport, protocol
// (non-2xx) and payload (body not a JSON object).
func (c *ReplyClient) GenerateReply(ctx context.Context, clientSequence string, history []models.Message) (*models.ReplyResponse, error) {
	endpoint, err := c.endpoint(models.PathGenerateReply)
	if err != nil {
		c.logger.Warn("generate reply rejected", zap.Error(err))
		return nil, err
	}

	payload, err := buildReplyPayload(clientSequence, history)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	status, body, err := c.do(ctx, req, "generate reply", endpoint)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("generate reply",
		zap.Int("history_len", len(history)),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	if !isSuccess(status) {
		return nil, newStatusError(status, endpoint, body)
	}

	return parseReplyResponse(body, endpoint)
}

// buildReplyPayload encodes the request body. The history is copied so an
// empty transcript encodes as [] rather than null.
func buildReplyPayload(clientSequence string, history []models.Message) ([]byte, error) {
	return json.Marshal(models.ReplyRequest{
		ClientSequence: clientSequence,
		ChatHistory:    models.CloneMessages(history),
	})
}

// parseReplyResponse decodes a success body. A missing, null or empty
// aiReply yields a response without reply text.
func parseReplyResponse(body []byte, endpoint string) (*models.ReplyResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", endpoint)
	}

	result := gjson.ParseBytes(body)
	if !result.IsObject() {
		return nil, apierrors.NewParseError("response body is not a JSON object", endpoint)
	}

	reply := result.Get("aiReply")
	switch reply.Type {
	case gjson.String, gjson.Null:
	default:
		if reply.Exists() {
			return nil, apierrors.NewParseError("aiReply is not a string", endpoint)
		}
	}

	return &models.ReplyResponse{
		AIReply: reply.String(),
		Raw:     string(body),
	}, nil
}

// newStatusError builds the protocol error for a non-2xx response, using the
// service's {"error": "..."} message when there is one
func newStatusError(status int, endpoint string, body []byte) error {
	var message string
	if gjson.ValidBytes(body) {
		message = strings.TrimSpace(gjson.GetBytes(body, "error").String())
	}

	errorBody := body
	if len(errorBody) > maxErrorBodySize {
		errorBody = errorBody[:maxErrorBodySize]
	}

	return apierrors.NewAPIErrorWithBody(status, endpoint, message, string(errorBody))
}

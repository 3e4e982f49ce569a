package api

import (
	"context"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/models"
)

// Health calls GET /health on the reply service
func (c *ReplyClient) Health(ctx context.Context) (models.HealthStatus, error) {
	endpoint, err := c.endpoint(models.PathHealth)
	if err != nil {
		return models.HealthStatus{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.HealthStatus{}, fmt.Errorf("failed to create request: %w", err)
	}

	status, body, err := c.do(ctx, req, "health check", endpoint)
	if err != nil {
		return models.HealthStatus{}, err
	}
	if !isSuccess(status) {
		return models.HealthStatus{}, newStatusError(status, endpoint, body)
	}

	if !gjson.ValidBytes(body) {
		return models.HealthStatus{}, apierrors.NewParseError("response body is not valid JSON", endpoint)
	}

	return models.HealthStatus{Status: gjson.GetBytes(body, "status").String()}, nil
}

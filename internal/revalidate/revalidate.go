// Package revalidate notifies the frontend cache when catalog content changes.
package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/config"
)

type client struct {
	url        string
	secret     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a revalidation client. With no URL configured every
// Trigger call is a no-op, so local setups need no frontend running.
func NewClient(cfg config.RevalidateConfig, logger *zap.Logger) *client {
	return &client{
		url:    cfg.URL,
		secret: cfg.Secret,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

type revalidateRequest struct {
	Paths []string `json:"paths"`
}

// Trigger asks the frontend to rebuild the given paths. Failures are logged
// and swallowed; stale cache is never worth failing the mutation that
// triggered it.
func (c *client) Trigger(ctx context.Context, paths ...string) {
	if c.url == "" || len(paths) == 0 {
		return
	}

	body, err := json.Marshal(revalidateRequest{Paths: paths})
	if err != nil {
		c.logger.Error("failed to marshal revalidation request", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build revalidation request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("revalidation request failed",
			zap.Strings("paths", paths),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Warn("revalidation rejected",
			zap.Strings("paths", paths),
			zap.String("status", fmt.Sprintf("%d", resp.StatusCode)),
		)
		return
	}

	c.logger.Debug("revalidation triggered", zap.Strings("paths", paths))
}

// CoursePath returns the frontend path for one course page
func CoursePath(courseID int) string {
	return fmt.Sprintf("/courses/%d", courseID)
}

// CatalogPath is the frontend course listing page
const CatalogPath = "/courses"

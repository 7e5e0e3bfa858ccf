package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/domain"
)

// Submitter delivers a built submission to the sale recorder
type Submitter interface {
	Submit(ctx context.Context, sub *domain.SaleSubmission) (int, error)
}

// HTTPSubmitter posts submissions to a running sale recorder
type HTTPSubmitter struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSubmitter creates a submitter for the recorder at baseURL
func NewHTTPSubmitter(baseURL string, logger *zap.Logger) *HTTPSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSubmitter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Submit posts the submission to /api/submit-sale and returns the number of
// ledger rows the recorder reports as appended.
func (s *HTTPSubmitter) Submit(ctx context.Context, sub *domain.SaleSubmission) (int, error) {
	jsonData, err := json.Marshal(sub)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/submit-sale", bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("Sale submission request failed", zap.Error(err))
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			if apiErr.Details != "" {
				return 0, fmt.Errorf("%s: %s", apiErr.Error, apiErr.Details)
			}
			return 0, fmt.Errorf("%s", apiErr.Error)
		}
		return 0, fmt.Errorf("recorder returned %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	s.logger.Info("Sale recorded",
		zap.String("message", result.Message),
		zap.Int("count", result.Count),
	)
	return result.Count, nil
}

package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"contract-qa-be/internal/dto"
	"contract-qa-be/internal/pkg/serverutils"
	"contract-qa-be/pkg/agent"
)

// GuardrailHTTPClient talks to a remote safety-screening service. Used when
// the guardrail collaborator is deployed out of process.
type GuardrailHTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGuardrailHTTPClient(baseURL string, timeout time.Duration) *GuardrailHTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GuardrailHTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GuardrailHTTPClient) ValidateInput(ctx context.Context, text, tenantID string) (*agent.GuardrailResult, error) {
	body, err := json.Marshal(dto.ValidateInputRequest{Text: text, TenantId: tenantID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate/input", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if correlationID, ok := ctx.Value(serverutils.CorrelationIDContextKey).(string); ok && correlationID != "" {
		req.Header.Set(serverutils.CorrelationIDHeader, correlationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guardrail request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("guardrail returned status %d", resp.StatusCode)
	}

	var verdict dto.ValidateInputResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decode guardrail verdict: %w", err)
	}

	return &agent.GuardrailResult{
		Passed:         verdict.Passed,
		RefusalCode:    verdict.RefusalCode,
		InjectionScore: verdict.InjectionScore,
	}, nil
}

// internal/mail/client.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creditpath/internal/common/errors"
	"creditpath/internal/models"
)

// CarrierClient talks to the physical mail carrier's letters API.
type CarrierClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// LetterRequest is one letter submission to the carrier.
type LetterRequest struct {
	Description string               `json:"description"`
	To          models.PostalAddress `json:"to"`
	From        models.PostalAddress `json:"from"`
	Body        string               `json:"body"`
	Color       bool                 `json:"color"`
	CertifiedMail bool               `json:"certified_mail"`
}

// SendResult is the carrier's success response. Failures never produce a
// SendResult; they surface as errors carrying the carrier status code.
type SendResult struct {
	ID                   string  `json:"id"`
	TrackingNumber       string  `json:"tracking_number"`
	ExpectedDeliveryDate string  `json:"expected_delivery_date"`
	Price                float64 `json:"price,string"`
}

func NewCarrierClient(baseURL, apiKey string, timeout time.Duration) *CarrierClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CarrierClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// TestMode reports whether the configured key is a non-billing test key.
// Carriers issue test keys with a "test_" prefix; letters sent under one are
// never printed or mailed.
func (c *CarrierClient) TestMode() bool {
	return strings.HasPrefix(c.apiKey, "test_")
}

// SendLetter submits one letter. The call is all-or-nothing: any error means
// no letter was accepted and nothing should be recorded.
func (c *CarrierClient) SendLetter(ctx context.Context, letter *LetterRequest) (*SendResult, error) {
	url := fmt.Sprintf("%s/v1/letters", c.baseURL)

	jsonData, err := json.Marshal(letter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal letter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.NewMailTimeoutError(err)
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewMailSendFailedError(resp.StatusCode, string(body))
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}
	type timeouter interface{ Timeout() bool }
	var t timeouter
	if stderrors.As(err, &t) {
		return t.Timeout()
	}
	return false
}

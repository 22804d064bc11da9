package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/YelzhanWeb/pizzaform/internal/domain"
	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

// DefaultEndpoint is where orders go unless configured otherwise.
const DefaultEndpoint = "http://localhost:9009/api/order"

type submitter struct {
	client   *http.Client
	endpoint string
}

// NewSubmitter posts orders as JSON to endpoint. A zero timeout leaves the
// request bounded only by the caller's context.
func NewSubmitter(endpoint string, timeout time.Duration) interfaces.OrderSubmitter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &submitter{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

func (s *submitter) SubmitOrder(ctx context.Context, payload domain.OrderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call order endpoint: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", domain.ErrOrderRejected, resp.StatusCode)
	}
	return nil
}

// Package booking submits the reservation form from the browser to the
// reservation API and reports the result to the visitor.
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Form carries the raw field values exactly as the visitor typed them.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Guests  string `json:"guests"`
	Message string `json:"message"`
}

// Outcome classifies a submission.
type Outcome int

const (
	Success     Outcome = iota // 2xx with a JSON body
	Rejected                   // the API answered with a non-success status
	Unreachable                // no usable answer: transport error or unreadable body
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Rejected:
		return "rejected"
	case Unreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient posts to endpoint (e.g. "/reservations" or an absolute URL).
// A nil httpClient uses http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Submit sends the form once. There is no retry; the returned error explains
// Rejected and Unreachable outcomes for logging only.
func (c *Client) Submit(ctx context.Context, form Form) (Outcome, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return Unreachable, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Unreachable, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Unreachable, fmt.Errorf("post reservation: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unreachable, fmt.Errorf("read response: %w", err)
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return Unreachable, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Rejected, fmt.Errorf("reservation api returned %d: %v", resp.StatusCode, result["error"])
	}
	return Success, nil
}

package kiosk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campusHub/internal/checkin"
	"campusHub/internal/models"
)

var ErrRejected = errors.New("check-in rejected by server")

// Verdict is the server's answer to one scan.
type Verdict struct {
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	Outcome    checkin.Outcome    `json:"outcome"`
	Ticket     map[string]string  `json:"ticket"`
	Redemption *models.Redemption `json:"redemption,omitempty"`
}

// Client posts scans to the check-in endpoint with an organizer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Redeem(ctx context.Context, raw string) (*Verdict, error) {
	const op = "kiosk.Client.Redeem"

	body, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkin/scan", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var v Verdict
	if err = json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: status %d: %s", op, ErrRejected, resp.StatusCode, v.Error)
	}

	return &v, nil
}

// Package client is the Go client for the gatepass check-in API: a typed
// wrapper over the HTTP surface plus the on-disk session the staff terminal
// restores between runs.
package client

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Participant mirrors the record returned by GET /participant/:id.
type Participant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	College       string `json:"college"`
	Gender        string `json:"gender"`
	Contact       string `json:"contact"`
	Accommodation string `json:"accommodation"`
	PassType      string `json:"passType"`
	CheckInStatus string `json:"checkInStatus"`
	CheckedInBy   string `json:"checkedInBy,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// HistoryEntry mirrors one element of GET /participants.
type HistoryEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	College     string `json:"college"`
	CheckedInBy string `json:"checkedInBy"`
	Timestamp   string `json:"timestamp"`
}

// Stats mirrors GET /stats.
type Stats struct {
	Total     int `json:"total"`
	CheckedIn int `json:"checkedIn"`
	Pending   int `json:"pending"`
}

// CheckInResult mirrors PUT /participant/:id/checkin.
type CheckInResult struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// User is the staff identity returned on login.
type User struct {
	Name string `json:"name"`
}

// Client talks to a gatepass server.
type Client struct {
	t *transport
}

// New builds a client for baseURL. token may be empty; Login sets it.
func New(baseURL, token string) *Client {
	return &Client{t: &transport{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}}
}

// Login authenticates and keeps the returned token on the client for
// subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var session Session
	err := c.t.do(ctx, http.MethodPost, "/login",
		map[string]string{"username": username, "password": password}, &session)
	if err != nil {
		return nil, err
	}
	c.t.token = session.AccessToken
	return &session, nil
}

// Participant fetches a single record by payment identifier.
func (c *Client) Participant(ctx context.Context, id string) (*Participant, error) {
	var p Participant
	if err := c.t.do(ctx, http.MethodGet, "/participant/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckIn marks the participant as printed.
func (c *Client) CheckIn(ctx context.Context, id string) (*CheckInResult, error) {
	var result CheckInResult
	if err := c.t.do(ctx, http.MethodPut, "/participant/"+id+"/checkin", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History returns the check-in history.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var history []HistoryEntry
	if err := c.t.do(ctx, http.MethodGet, "/participants", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Stats returns the dashboard counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.t.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportHistory streams the xlsx history workbook to w.
func (c *Client) ExportHistory(ctx context.Context, w io.Writer) error {
	return c.t.download(ctx, "/participants/export", w)
}

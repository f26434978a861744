// Package apiclient is a Go client for the flashgen HTTP API. It implements
// review.Gateway and reports generation and save failures as
// *review.ErrorState, ready to be shown to the user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/flashgen-backend/internal/review"
)

const (
	defaultTimeout = 90 * time.Second
	// LoginURL is where callers are sent when their session is rejected.
	LoginURL = "/login"
)

var _ review.Gateway = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL string
	// Token is a bearer access token; empty means anonymous.
	Token string
	// APIKey optionally overrides the server's provider key.
	APIKey  string
	Timeout time.Duration
}

// Client talks to a flashgen server.
type Client struct {
	baseURL    string
	token      string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client.
func New(opts Options, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("component", "apiclient"),
	}
}

// Error is a non-2xx response from a List or Delete call.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("apiclient: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("apiclient: %d %s", e.StatusCode, e.Code)
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status <= 299 }

func (r response) envelope() errorEnvelope {
	var env errorEnvelope
	_ = json.Unmarshal(r.body, &env)
	return env
}

func (c *Client) do(ctx context.Context, method, path string, in any) (response, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return response{}, fmt.Errorf("apiclient: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.apiKey != "" {
		req.Header.Set("X-AI-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}

	c.log.DebugContext(ctx, "api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)
	return response{status: resp.StatusCode, body: raw}, nil
}

func (c *Client) decode(r response, out any) error {
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

func toError(r response) *Error {
	env := r.envelope()
	return &Error{StatusCode: r.status, Code: env.Error, Message: env.Message}
}

// Flashcard is a stored flashcard as returned by the API.
type Flashcard struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Source       string    `json:"source"`
	GenerationID *int64    `json:"generation_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListParams narrows a flashcard listing. Zero values are omitted.
type ListParams struct {
	Page         int
	Limit        int
	Source       string
	GenerationID int64
	Sort         string
	Order        string
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Source != "" {
		q.Set("source", p.Source)
	}
	if p.GenerationID > 0 {
		q.Set("generation_id", strconv.FormatInt(p.GenerationID, 10))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Page is one page of flashcards.
type Page struct {
	Data       []Flashcard `json:"data"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}

// List returns one page of the caller's flashcards.
func (c *Client) List(ctx context.Context, p ListParams) (*Page, error) {
	resp, err := c.do(ctx, http.MethodGet, "/flashcards"+p.query(), nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient: list flashcards: %w", err)
	}
	if !resp.ok() {
		return nil, toError(resp)
	}

	var page Page
	if err := c.decode(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes one of the caller's flashcards.
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, "/flashcards/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return fmt.Errorf("apiclient: delete flashcard: %w", err)
	}
	if !resp.ok() {
		return toError(resp)
	}
	return nil
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	var es *review.ErrorState
	return errors.As(err, &es) && es.ShouldRedirect
}

package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/myenglish-flashcards/internal/domain"
	"github.com/heartmarshall/myenglish-flashcards/pkg/ctxutil"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxErrorBody      = 4 << 10
)

// Client talks to the flashcard backend. It implements the module loader's
// data source and the card state store's remote mutations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetryDelay sets the pause before retrying a failed read.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithBaseTransport replaces the underlying transport (for testing).
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// NewClient creates a Client for baseURL. tokens may be nil for anonymous access.
func NewClient(baseURL string, tokens tokenSource, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout, Transport: http.DefaultTransport},
		log:        logger.With("adapter", "restapi"),
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = &headerTransport{
		next:   &loggingTransport{next: c.httpClient.Transport, log: c.log},
		tokens: tokens,
	}
	return c
}

// FetchModule returns module metadata.
func (c *Client) FetchModule(ctx context.Context, moduleID string) (*domain.Module, error) {
	var m apiModule
	if err := c.getJSON(ctx, "/modules/"+url.PathEscape(moduleID), &m); err != nil {
		return nil, fmt.Errorf("fetch module %s: %w", moduleID, err)
	}
	module := mapModule(m)
	return &module, nil
}

// FetchModuleCards returns the raw card records of a module, in backend order.
func (c *Client) FetchModuleCards(ctx context.Context, moduleID string) ([]domain.CardRecord, error) {
	var cards []apiCard
	if err := c.getJSON(ctx, "/modules/"+url.PathEscape(moduleID)+"/cards", &cards); err != nil {
		return nil, fmt.Errorf("fetch module %s cards: %w", moduleID, err)
	}

	records := make([]domain.CardRecord, 0, len(cards))
	for _, card := range cards {
		records = append(records, mapCard(card))
	}

	c.log.DebugContext(ctx, "module cards fetched",
		slog.String("module_id", moduleID),
		slog.Int("cards", len(records)),
	)
	return records, nil
}

// SetCardLearned sets the learned status of a card.
func (c *Client) SetCardLearned(ctx context.Context, cardID string, learned bool) error {
	body := learnedRequest{LearnedStatus: domain.LearnedStatusOf(learned)}
	if err := c.send(ctx, http.MethodPatch, cardPath(cardID, "learned"), body); err != nil {
		return fmt.Errorf("set card %s learned: %w", cardID, err)
	}
	return nil
}

// SaveCard adds a card to the user's saved cards.
func (c *Client) SaveCard(ctx context.Context, cardID string) error {
	if err := c.send(ctx, http.MethodPost, cardPath(cardID, "save"), nil); err != nil {
		return fmt.Errorf("save card %s: %w", cardID, err)
	}
	return nil
}

// UnsaveCard removes a card from the user's saved cards.
func (c *Client) UnsaveCard(ctx context.Context, cardID string) error {
	if err := c.send(ctx, http.MethodDelete, cardPath(cardID, "save"), nil); err != nil {
		return fmt.Errorf("unsave card %s: %w", cardID, err)
	}
	return nil
}

func cardPath(cardID, action string) string {
	return "/cards/" + url.PathEscape(cardID) + "/" + action
}

// getJSON performs a GET with one retry on 5xx or network errors and decodes the body into dst.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	ctx, _ = ctxutil.EnsureRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// send performs a mutation. Mutations are not retried: a timed-out request may
// already have been applied, and the caller rolls back on error.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	ctx, _ = ctxutil.EnsureRequestID(ctx)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "api retry", slog.String("path", req.URL.Path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.httpClient.Do(req)
}

// checkStatus maps non-2xx responses to domain errors. The body is left for the caller to close.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var envelope apiError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &envelope)
	msg := envelope.message()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewValidationError("request", msg)
	}
	if msg != "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

// Package clients holds the typed HTTP clients for the backend services the
// storefront consumes: cart, offers, checkout and orders.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderCorrelationID is propagated on every backend call so a storefront
// action can be traced across services.
const HeaderCorrelationID = "X-Correlation-Id"

type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(name, baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Client{
		name:    name,
		baseURL: u,
		http:    httpClient,
		log:     log.With().Str("client", name).Logger(),
	}
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Transport failures and 5xx map to *NetworkError, 404 to
// ErrNotFound; other non-2xx statuses surface the backend's error message.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, body, out any) error {
	op := c.name + " " + method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderCorrelationID, uuid.NewString())

	c.log.Debug().Str("method", method).Str("path", path).Msg("backend call")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s: %s", op, readErrorMessage(resp.Body, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func readErrorMessage(r io.Reader, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("backend returned %d", status)
}

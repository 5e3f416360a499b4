package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tsheets/internal/common"
	"github.com/dmitrijs2005/tsheets/internal/logging"
	"github.com/dmitrijs2005/tsheets/internal/netx"
	"github.com/google/uuid"
)

// error bodies longer than this are cut in TransportError
const maxErrorBody = 512

// Transport performs one authenticated request and returns the JSON body.
// A nil payload sends an empty body.
type Transport interface {
	Request(ctx context.Context, endpoint, method string, payload any, params url.Values) (json.RawMessage, error)
}

// HTTPTransport is the net/http Transport with bearer-token authorization.
type HTTPTransport struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logging.Logger
}

func NewHTTPTransport(baseURL, token string, timeout time.Duration, log logging.Logger) *HTTPTransport {
	return &HTTPTransport{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (t *HTTPTransport) Request(ctx context.Context, endpoint, method string, payload any, params url.Values) (json.RawMessage, error) {
	target, err := netx.EndpointURL(t.baseURL, endpoint, params)
	if err != nil {
		return nil, err
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+t.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := t.log.With("request_id", requestID, "endpoint", endpoint, "method", method)
	log.Debug(ctx, "request")

	started := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %v", ErrUnavailable, endpoint, err)
	}
	log.Debug(ctx, "response", "status", resp.StatusCode, "bytes", len(b), "elapsed", time.Since(started))

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Endpoint:   endpoint,
			Method:     method,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(b)), maxErrorBody),
		}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, &DecodeError{Endpoint: endpoint, Err: errors.New("empty body")}
	}
	return json.RawMessage(b), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

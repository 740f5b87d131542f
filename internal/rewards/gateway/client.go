package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const InitDataHeader = "X-Telegram-Init-Data"

type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Body     any
	Token    string
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client is the only place that talks HTTP to the rewards API. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("gateway"),
	}
}

func (c *Client) Call(ctx context.Context, r Request, out any) error {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return errors.Wrap(err, "json.Marshal failed: ")
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + "/" + strings.TrimLeft(r.Endpoint, "/")
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext failed: ")
	}
	req.Header.Set("Content-Type", "application/json")
	if r.Token != "" {
		req.Header.Set(InitDataHeader, r.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("httpClient.Do failed: ", zap.String("endpoint", r.Endpoint), zap.Error(err))
		return &RequestError{Message: err.Error(), Kind: KindTransport, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("io.ReadAll failed: ", zap.String("endpoint", r.Endpoint), zap.Error(err))
		return &RequestError{Status: resp.StatusCode, Message: err.Error(), Kind: KindTransport, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := decodeError(resp.StatusCode, raw)
		c.logger.Warn("rewards api returned error",
			zap.String("endpoint", r.Endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", reqErr.Message))
		return reqErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("json.Unmarshal failed: ", zap.String("endpoint", r.Endpoint), zap.Error(err))
		return &RequestError{Status: resp.StatusCode, Message: "invalid response body", Kind: KindTransport, cause: err}
	}
	return nil
}

func decodeError(status int, raw []byte) *RequestError {
	eb := errorBody{}
	if err := json.Unmarshal(raw, &eb); err != nil {
		return &RequestError{Status: status, Message: genericMessage(status), Kind: KindTransport}
	}
	msg := eb.Error
	if msg == "" {
		msg = genericMessage(status)
	}
	return &RequestError{Status: status, Message: msg, Kind: KindAPI}
}

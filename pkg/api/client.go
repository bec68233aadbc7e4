package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/constants"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
)

// Client is the HTTP implementation of API.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the given bot token.
func NewClient(token string) *Client {
	return NewClientWithBase(token, constants.APIBaseURL, nil)
}

// NewClientWithBase creates an API client against a custom base URL and
// HTTP client. Both may be left zero to get the defaults; the HTTP client
// carries no global timeout, deadlines are applied per request.
func NewClientWithBase(token, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = constants.APIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *Client) endpointURL(endpoint string) string {
	return c.baseURL + c.token + "/" + endpoint
}

// Get performs a GET call against an endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, payload any) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, payload, constants.DefaultRequestTimeout)
}

// Post performs a POST call with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, payload, constants.DefaultRequestTimeout)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, timeout time.Duration) (*Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
		body = bytes.NewReader(data)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint), body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.roundTrip(endpoint, req)
}

// Upload performs a POST call with a multipart body carrying payload fields
// and the given files. The form boundary is fixed.
func (c *Client) Upload(ctx context.Context, endpoint string, payload map[string]string, files []File) (*Response, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.SetBoundary(constants.FormDataBoundary); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	for field, value := range payload {
		if err := form.WriteField(field, value); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
	}
	for _, f := range files {
		part, err := form.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
	}
	if err := form.Close(); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, constants.DefaultRequestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), &buf)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.roundTrip(endpoint, req)
}

func (c *Client) roundTrip(endpoint string, req *http.Request) (*Response, error) {
	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"token":    maskToken(c.token),
	}).Debug("telegram-api-request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, &model.DecodeError{Err: fmt.Errorf("%s response: %w", endpoint, err)}
	}
	return &response, nil
}

// GetMe returns the bot's own user record.
func (c *Client) GetMe(ctx context.Context) (*model.User, error) {
	resp, err := c.Get(ctx, EndpointGetMe, nil)
	if err != nil {
		return nil, err
	}
	var me model.User
	if err := resp.Decode(&me); err != nil {
		return nil, err
	}
	return &me, nil
}

// GetUpdates performs one long poll call. The request inherits the
// server-side timeout, so the per-request deadline is extended by it.
func (c *Client) GetUpdates(ctx context.Context, req GetUpdatesRequest) ([]model.Update, error) {
	if req.Limit == 0 {
		req.Limit = constants.DefaultPollLimit
	}
	if req.Limit < constants.MinPollLimit {
		req.Limit = constants.MinPollLimit
	}
	if req.Limit > constants.MaxPollLimit {
		req.Limit = constants.MaxPollLimit
	}

	timeout := constants.DefaultRequestTimeout + time.Duration(req.Timeout)*time.Second
	resp, err := c.do(ctx, http.MethodPost, EndpointGetUpdates, req, timeout)
	if err != nil {
		return nil, err
	}
	var updates []model.Update
	if err := resp.Decode(&updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SetWebhook registers the public webhook URL with the platform.
func (c *Client) SetWebhook(ctx context.Context, req SetWebhookRequest) error {
	resp, err := c.Post(ctx, EndpointSetWebhook, req)
	if err != nil {
		return err
	}
	return resp.Decode(nil)
}

// DeleteWebhook unregisters the webhook.
func (c *Client) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	payload := map[string]bool{"drop_pending_updates": dropPendingUpdates}
	resp, err := c.Post(ctx, EndpointDeleteWebhook, payload)
	if err != nil {
		return err
	}
	return resp.Decode(nil)
}

// SetMyCommands publishes the registered command list.
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	payload := map[string][]BotCommand{"commands": commands}
	resp, err := c.Post(ctx, EndpointSetMyCommands, payload)
	if err != nil {
		return err
	}
	return resp.Decode(nil)
}

// SendMessage sends a text message. Messages longer than the platform limit
// are truncated before sending.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*model.Message, error) {
	if len(req.Text) > constants.MaxMessageLength {
		limit := constants.MaxMessageLength
		// Back off the cut point so a multi-byte rune is never split.
		for limit > 0 && !utf8.RuneStart(req.Text[limit]) {
			limit--
		}
		logger.WithFields(logrus.Fields{
			"chat_id":         req.ChatID,
			"original_length": len(req.Text),
			"max_length":      constants.MaxMessageLength,
		}).Info("truncating-message-to-platform-limit")
		req.Text = req.Text[:limit]
	}

	resp, err := c.Post(ctx, EndpointSendMessage, req)
	if err != nil {
		return nil, err
	}
	var raw model.RawMessage
	if err := resp.Decode(&raw); err != nil {
		return nil, err
	}
	msg := raw.Normalize()
	return &msg, nil
}

// maskToken masks the bot token for logging.
func maskToken(s string) string {
	if len(s) <= constants.MinTokenLengthForMasking {
		return "***"
	}
	return s[:constants.TokenMaskPrefixLength] + "***" + s[len(s)-constants.TokenMaskSuffixLength:]
}

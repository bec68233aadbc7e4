// Package bot wires the update pipeline together: the two ingestion
// sources (long polling and webhook), the dispatcher that fans normalized
// updates out to subscribers, and the command engine.
//
// # Usage
//
// Build a client, register handlers and commands during startup, then
// start one ingestion source:
//
//	client, err := bot.NewClient(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.Subscribe(func(ctx *bot.Context, u model.Update) {
//	    // runs concurrently for every update
//	})
//	client.RegisterCommand("ping", "check liveness", func(ctx *bot.Context, msg model.Message) error {
//	    _, err := ctx.API.SendMessage(context.Background(), api.SendMessageRequest{
//	        ChatID: msg.Chat.ChatID(),
//	        Text:   "pong",
//	    })
//	    return err
//	})
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Dispatch model
//
// Every subscriber runs in its own goroutine per update, fire-and-forget:
// no ordering across subscribers, no timeout, and a panicking handler is
// recovered at the goroutine boundary without touching its siblings. The
// command engine runs synchronously after the subscribers are spawned and
// fires at most one command handler per message, also in its own
// goroutine.
//
// Registration calls (Subscribe, RegisterCommand, ...) are collected
// during startup and must not race with Start.
package bot

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/constants"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
)

// UpdateHandler is a subscriber invoked concurrently for every update.
type UpdateHandler func(ctx *Context, update model.Update)

// RawUpdateHandler is a subscriber receiving the wire form of every
// update, before normalization shapes it.
type RawUpdateHandler func(ctx *Context, update model.RawUpdate)

// Client manages the interaction with the platform: it retrieves updates
// through one of the two sources and dispatches them to the registered
// subscribers and commands.
type Client struct {
	api    api.API
	data   *DataMap
	engine *CommandEngine

	handlers    []UpdateHandler
	rawHandlers []RawUpdateHandler

	allowedUpdates []api.UpdateType
	webhookOpts    *WebhookOptions
}

// NewClient creates a client talking to the platform with the given bot
// token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, &ConfigError{Option: "token", Reason: "must not be empty"}
	}
	return NewClientWithAPI(api.NewClient(token)), nil
}

// NewClientWithAPI creates a client over a custom API implementation.
func NewClientWithAPI(a api.API) *Client {
	return &Client{
		api:    a,
		data:   NewDataMap(),
		engine: NewCommandEngine(""),
	}
}

// API returns the outbound API handle shared with handlers.
func (c *Client) API() api.API { return c.api }

// Data returns the shared data store. Populate it during startup; handlers
// access it concurrently afterwards.
func (c *Client) Data() *DataMap { return c.data }

// Subscribe registers a handler invoked for every normalized update.
// Subscribers are append-only; there is no removal.
func (c *Client) Subscribe(h UpdateHandler) {
	c.handlers = append(c.handlers, h)
}

// SubscribeRaw registers a handler invoked with the wire form of every
// update.
func (c *Client) SubscribeRaw(h RawUpdateHandler) {
	c.rawHandlers = append(c.rawHandlers, h)
}

// RegisterCommand registers a bot command by name (without the leading
// slash) with a description for the platform's command list.
func (c *Client) RegisterCommand(name, description string, handler CommandHandler) {
	c.engine.Register(name, description, handler)
}

// SetBotName overrides the bot username used for /name@bot command
// matching. When unset it is resolved via getMe on start.
func (c *Client) SetBotName(name string) {
	c.engine.SetBotName(name)
}

// SetAllowedUpdates restricts the update types the platform delivers.
func (c *Client) SetAllowedUpdates(types ...api.UpdateType) {
	c.allowedUpdates = types
}

// UseWebhook switches Start to webhook ingestion with the given options.
func (c *Client) UseWebhook(opts WebhookOptions) {
	c.webhookOpts = &opts
}

// Start runs the configured ingestion source until the context is canceled
// or retrieval fails terminally. It defaults to long polling; UseWebhook
// switches to the webhook source.
func (c *Client) Start(ctx context.Context) error {
	if c.webhookOpts != nil {
		return c.StartWebhook(ctx, *c.webhookOpts)
	}
	return c.StartPolling(ctx, PollerOptions{})
}

// prepare resolves the bot username and publishes the registered commands.
func (c *Client) prepare(ctx context.Context) error {
	if c.engine.empty() {
		return nil
	}
	if c.engine.botName == "" {
		me, err := c.api.GetMe(ctx)
		if err != nil {
			return err
		}
		c.engine.SetBotName(me.Username)
	}
	return c.api.SetMyCommands(ctx, c.engine.Commands())
}

// StartPolling runs the long poll source until the context is canceled or
// a retrieval call fails. Retrieval errors end the loop; restarting is the
// caller's decision.
func (c *Client) StartPolling(ctx context.Context, opts PollerOptions) error {
	if err := c.prepare(ctx); err != nil {
		return err
	}
	if opts.AllowedUpdates == nil {
		opts.AllowedUpdates = c.allowedUpdates
	}

	poller := NewPoller(c.api, opts)
	logger.Info("long-polling-started")

	for {
		update, err := poller.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("long-polling-stopped")
				return nil
			}
			return err
		}
		c.dispatch(update)
	}
}

// StartWebhook runs the webhook source until the context is canceled or
// the listener fails. When opts.URL is set the webhook is registered with
// the platform first.
func (c *Client) StartWebhook(ctx context.Context, opts WebhookOptions) error {
	if err := c.prepare(ctx); err != nil {
		return err
	}
	if opts.URL != "" {
		err := c.api.SetWebhook(ctx, api.SetWebhookRequest{
			URL:                opts.URL,
			MaxConnections:     opts.MaxConnections,
			AllowedUpdates:     c.allowedUpdates,
			DropPendingUpdates: opts.DropPendingUpdates,
		})
		if err != nil {
			return err
		}
	}

	webhook, err := NewWebhook(opts)
	if err != nil {
		return err
	}
	if err := webhook.Start(); err != nil {
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			shCtx, cancel := context.WithTimeout(context.Background(), constants.WebhookShutdownTimeout)
			defer cancel()
			if err := webhook.Shutdown(shCtx); err != nil {
				logger.Errorf("webhook-shutdown-error: %v", err)
			}
		case <-webhook.done:
			// Listener failed on its own; nothing left to shut down.
		}
	}()

	for update := range webhook.Updates() {
		c.dispatch(update)
	}

	if err := webhook.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// dispatch fans one update out: every raw subscriber and every subscriber
// in its own goroutine, fire-and-forget, then the command engine
// synchronously. Handlers never block each other and their failures never
// reach this loop.
func (c *Client) dispatch(update model.Update) {
	dispatchID := uuid.NewString()

	if len(c.rawHandlers) > 0 {
		raw := update.Raw()
		for i, h := range c.rawHandlers {
			go c.runRawHandler(dispatchID, i, h, raw)
		}
	}
	for i, h := range c.handlers {
		go c.runHandler(dispatchID, i, h, update)
	}

	c.engine.Dispatch(newContext(c.api, c.data), update)
}

func (c *Client) runHandler(dispatchID string, index int, h UpdateHandler, update model.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"dispatch_id": dispatchID,
				"handler":     index,
				"update_id":   update.UpdateID,
				"panic":       r,
			}).Error("update-handler-panicked")
		}
	}()
	h(newContext(c.api, c.data), update)
}

func (c *Client) runRawHandler(dispatchID string, index int, h RawUpdateHandler, raw model.RawUpdate) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"dispatch_id": dispatchID,
				"raw_handler": index,
				"update_id":   raw.UpdateID,
				"panic":       r,
			}).Error("raw-update-handler-panicked")
		}
	}()
	h(newContext(c.api, c.data), raw)
}

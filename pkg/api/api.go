// Package api is the outbound collaborator of the update pipeline: a thin
// client for the Telegram bot HTTP API.
//
// It exposes the generic Get/Post/Upload primitives that handlers build
// their own endpoint calls on top of, plus the handful of typed calls the
// pipeline itself needs (getUpdates, getMe, setWebhook, setMyCommands,
// sendMessage). Everything speaks the ok/result/description response
// envelope; see Response.
package api

import (
	"context"

	"github.com/keepmind9/botpipe/pkg/model"
)

// API is the outbound interface shared with every dispatched handler. All
// calls are independent, so a single instance is safe for concurrent use
// without additional locking.
type API interface {
	// Get performs a GET call against an endpoint. payload may be nil.
	Get(ctx context.Context, endpoint string, payload any) (*Response, error)

	// Post performs a POST call with a JSON body. payload may be nil.
	Post(ctx context.Context, endpoint string, payload any) (*Response, error)

	// Upload performs a POST call with a multipart body carrying payload
	// fields and the given files, using a fixed form boundary.
	Upload(ctx context.Context, endpoint string, payload map[string]string, files []File) (*Response, error)

	// GetMe returns the bot's own user record.
	GetMe(ctx context.Context) (*model.User, error)

	// GetUpdates performs one long poll call and returns the normalized
	// batch in received order.
	GetUpdates(ctx context.Context, req GetUpdatesRequest) ([]model.Update, error)

	// SetWebhook registers the public webhook URL with the platform.
	SetWebhook(ctx context.Context, req SetWebhookRequest) error

	// DeleteWebhook unregisters the webhook.
	DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error

	// SetMyCommands publishes the registered command list.
	SetMyCommands(ctx context.Context, commands []BotCommand) error

	// SendMessage sends a text message and returns the sent message.
	SendMessage(ctx context.Context, req SendMessageRequest) (*model.Message, error)
}

package api

import "github.com/keepmind9/botpipe/pkg/model"

// Endpoint names of the platform methods this library calls itself.
// Handlers may pass any other endpoint name to Get, Post or Upload.
const (
	EndpointGetMe         = "getMe"
	EndpointGetUpdates    = "getUpdates"
	EndpointSendMessage   = "sendMessage"
	EndpointSetMyCommands = "setMyCommands"
	EndpointSetWebhook    = "setWebhook"
	EndpointDeleteWebhook = "deleteWebhook"
)

// UpdateType is a type tag accepted by the allowed_updates filter.
type UpdateType string

const (
	UpdateTypeMessage            UpdateType = "message"
	UpdateTypeEditedMessage      UpdateType = "edited_message"
	UpdateTypeChannelPost        UpdateType = "channel_post"
	UpdateTypeEditedChannelPost  UpdateType = "edited_channel_post"
	UpdateTypeInlineQuery        UpdateType = "inline_query"
	UpdateTypeChosenInlineResult UpdateType = "chosen_inline_result"
	UpdateTypeCallbackQuery      UpdateType = "callback_query"
	UpdateTypeShippingQuery      UpdateType = "shipping_query"
	UpdateTypePreCheckoutQuery   UpdateType = "pre_checkout_query"
	UpdateTypePoll               UpdateType = "poll"
	UpdateTypePollAnswer         UpdateType = "poll_answer"
)

// GetUpdatesRequest are the parameters of one long poll call.
type GetUpdatesRequest struct {
	Offset         int64        `json:"offset,omitempty"`
	Limit          int          `json:"limit,omitempty"`
	Timeout        int          `json:"timeout,omitempty"` // seconds, held server-side
	AllowedUpdates []UpdateType `json:"allowed_updates,omitempty"`
}

// SetWebhookRequest registers the webhook URL with the platform.
type SetWebhookRequest struct {
	URL                string       `json:"url"`
	MaxConnections     int          `json:"max_connections,omitempty"`
	AllowedUpdates     []UpdateType `json:"allowed_updates,omitempty"`
	DropPendingUpdates bool         `json:"drop_pending_updates,omitempty"`
}

// BotCommand is one command entry pushed via setMyCommands.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SendMessageRequest are the parameters of a sendMessage call.
type SendMessageRequest struct {
	ChatID              int64                       `json:"chat_id"`
	Text                string                      `json:"text"`
	ParseMode           string                      `json:"parse_mode,omitempty"`
	ReplyToMessageID    int64                       `json:"reply_to_message_id,omitempty"`
	DisableNotification bool                        `json:"disable_notification,omitempty"`
	ReplyMarkup         *model.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// File is one file part of a multipart upload.
type File struct {
	FieldName string
	FileName  string
	Data      []byte
}

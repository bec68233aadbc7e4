package model

// Payload objects for the non-message update kinds. The pipeline does not
// reshape these; they pass through normalization as-is.

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID     string `json:"id"`
	From   User   `json:"from"`
	Query  string `json:"query"`
	Offset string `json:"offset"`
}

// ChosenInlineResult is an inline query result chosen by a user.
type ChosenInlineResult struct {
	ResultID        string `json:"result_id"`
	From            User   `json:"from"`
	InlineMessageID string `json:"inline_message_id,omitempty"`
	Query           string `json:"query"`
}

// CallbackQuery is an incoming callback query from an inline keyboard
// button. Message, when present, stays in wire form.
type CallbackQuery struct {
	ID              string      `json:"id"`
	From            User        `json:"from"`
	Message         *RawMessage `json:"message,omitempty"`
	InlineMessageID string      `json:"inline_message_id,omitempty"`
	ChatInstance    string      `json:"chat_instance,omitempty"`
	Data            string      `json:"data,omitempty"`
}

// ShippingQuery contains information about an incoming shipping query.
type ShippingQuery struct {
	ID             string `json:"id"`
	From           User   `json:"from"`
	InvoicePayload string `json:"invoice_payload"`
}

// PreCheckoutQuery contains information about an incoming pre-checkout
// query.
type PreCheckoutQuery struct {
	ID             string `json:"id"`
	From           User   `json:"from"`
	Currency       string `json:"currency"`
	TotalAmount    int64  `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

// PollAnswer represents a user changing their answer in a non-anonymous
// poll.
type PollAnswer struct {
	PollID    string `json:"poll_id"`
	User      User   `json:"user"`
	OptionIDs []int  `json:"option_ids"`
}

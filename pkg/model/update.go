// Package model implements the wire model decoder and the normalizer for
// Telegram bot updates.
//
// The platform serializes every object as a flat record in which all
// possible content fields are optional. This package re-architects that
// shape once, at the boundary, into closed tagged-variant types:
//
//   - Raw* types mirror the wire schema exactly (decoder output)
//   - Update, Message and Chat are the normalized domain types with
//     exactly one content variant each
//   - unrecognized shapes map to an explicit Unknown variant instead of
//     failing, so newer platform payloads degrade gracefully
//
// Normalization never fails. Decoding fails only on malformed JSON, which
// is reported as a *DecodeError.
package model

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a malformed or unrecognizable wire payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding wire payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Update is one normalized event received from the platform. UpdateID is a
// monotonic-ish watermark; the platform may reset the numbering after long
// idle periods, so it is not treated as a hard invariant.
type Update struct {
	UpdateID int64
	Content  UpdateContent
}

// UpdateContent is the closed content variant of an Update.
type UpdateContent interface {
	updateContent()
}

// UpdateMessage is a new incoming message.
type UpdateMessage struct {
	Message Message
}

// UpdateEditedMessage is a new version of a known message.
type UpdateEditedMessage struct {
	Message Message
}

// UpdateChannelPost is a new incoming channel post.
type UpdateChannelPost struct {
	Message Message
}

// UpdateEditedChannelPost is a new version of a known channel post.
type UpdateEditedChannelPost struct {
	Message Message
}

type UpdateInlineQuery struct {
	Query InlineQuery
}

type UpdateChosenInlineResult struct {
	Result ChosenInlineResult
}

type UpdateCallbackQuery struct {
	Query CallbackQuery
}

type UpdateShippingQuery struct {
	Query ShippingQuery
}

type UpdatePreCheckoutQuery struct {
	Query PreCheckoutQuery
}

type UpdatePoll struct {
	Poll Poll
}

type UpdatePollAnswer struct {
	Answer PollAnswer
}

// UpdateUnknown is the fallback for update kinds the library does not
// model.
type UpdateUnknown struct{}

func (UpdateMessage) updateContent()            {}
func (UpdateEditedMessage) updateContent()      {}
func (UpdateChannelPost) updateContent()        {}
func (UpdateEditedChannelPost) updateContent()  {}
func (UpdateInlineQuery) updateContent()        {}
func (UpdateChosenInlineResult) updateContent() {}
func (UpdateCallbackQuery) updateContent()      {}
func (UpdateShippingQuery) updateContent()      {}
func (UpdatePreCheckoutQuery) updateContent()   {}
func (UpdatePoll) updateContent()               {}
func (UpdatePollAnswer) updateContent()         {}
func (UpdateUnknown) updateContent()            {}

// Normalize converts the raw update into its closed representation. The
// optional fields are checked in fixed priority order and the first
// populated one selects the variant; an empty record yields UpdateUnknown.
func (r RawUpdate) Normalize() Update {
	u := Update{UpdateID: r.UpdateID}

	switch {
	case r.Message != nil:
		u.Content = UpdateMessage{Message: r.Message.Normalize()}
	case r.EditedMessage != nil:
		u.Content = UpdateEditedMessage{Message: r.EditedMessage.Normalize()}
	case r.ChannelPost != nil:
		u.Content = UpdateChannelPost{Message: r.ChannelPost.Normalize()}
	case r.EditedChannelPost != nil:
		u.Content = UpdateEditedChannelPost{Message: r.EditedChannelPost.Normalize()}
	case r.InlineQuery != nil:
		u.Content = UpdateInlineQuery{Query: *r.InlineQuery}
	case r.ChosenInlineResult != nil:
		u.Content = UpdateChosenInlineResult{Result: *r.ChosenInlineResult}
	case r.CallbackQuery != nil:
		u.Content = UpdateCallbackQuery{Query: *r.CallbackQuery}
	case r.ShippingQuery != nil:
		u.Content = UpdateShippingQuery{Query: *r.ShippingQuery}
	case r.PreCheckoutQuery != nil:
		u.Content = UpdatePreCheckoutQuery{Query: *r.PreCheckoutQuery}
	case r.Poll != nil:
		u.Content = UpdatePoll{Poll: *r.Poll}
	case r.PollAnswer != nil:
		u.Content = UpdatePollAnswer{Answer: *r.PollAnswer}
	default:
		u.Content = UpdateUnknown{}
	}
	return u
}

// Raw flattens the update back into its wire representation.
func (u Update) Raw() RawUpdate {
	raw := RawUpdate{UpdateID: u.UpdateID}

	switch c := u.Content.(type) {
	case UpdateMessage:
		raw.Message = RawMessageFrom(c.Message)
	case UpdateEditedMessage:
		raw.EditedMessage = RawMessageFrom(c.Message)
	case UpdateChannelPost:
		raw.ChannelPost = RawMessageFrom(c.Message)
	case UpdateEditedChannelPost:
		raw.EditedChannelPost = RawMessageFrom(c.Message)
	case UpdateInlineQuery:
		raw.InlineQuery = &c.Query
	case UpdateChosenInlineResult:
		raw.ChosenInlineResult = &c.Result
	case UpdateCallbackQuery:
		raw.CallbackQuery = &c.Query
	case UpdateShippingQuery:
		raw.ShippingQuery = &c.Query
	case UpdatePreCheckoutQuery:
		raw.PreCheckoutQuery = &c.Query
	case UpdatePoll:
		raw.Poll = &c.Poll
	case UpdatePollAnswer:
		raw.PollAnswer = &c.Answer
	}
	return raw
}

// Message returns the normalized message of a message-bearing update, or
// nil for any other update kind.
func (u Update) Message() *Message {
	switch c := u.Content.(type) {
	case UpdateMessage:
		return &c.Message
	case UpdateEditedMessage:
		return &c.Message
	case UpdateChannelPost:
		return &c.Message
	case UpdateEditedChannelPost:
		return &c.Message
	default:
		return nil
	}
}

// UnmarshalJSON decodes the wire record and normalizes it.
func (u *Update) UnmarshalJSON(data []byte) error {
	var raw RawUpdate
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Err: err}
	}
	*u = raw.Normalize()
	return nil
}

// MarshalJSON flattens the update back into its wire shape.
func (u Update) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Raw())
}

// DecodeUpdate parses one wire update payload.
func DecodeUpdate(data []byte) (Update, error) {
	var u Update
	if err := u.UnmarshalJSON(data); err != nil {
		return Update{}, err
	}
	return u, nil
}

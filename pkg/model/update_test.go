package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawUpdateNormalize_MessageVariant(t *testing.T) {
	raw := RawUpdate{
		UpdateID: 42,
		Message: &RawMessage{
			MessageID: 7,
			Date:      1700000000,
			Chat:      RawChat{ID: 100, Type: ChatTypePrivate, FirstName: "Ada"},
			Text:      "hello",
		},
	}

	u := raw.Normalize()

	assert.Equal(t, int64(42), u.UpdateID)
	content, ok := u.Content.(UpdateMessage)
	require.True(t, ok, "expected UpdateMessage, got %T", u.Content)
	assert.Equal(t, int64(7), content.Message.MessageID)
	text, _ := content.Message.Text()
	assert.Equal(t, "hello", text)
}

func TestRawUpdateNormalize_AllVariants(t *testing.T) {
	msg := &RawMessage{MessageID: 1, Date: 1700000000, Chat: RawChat{ID: 1, Type: ChatTypeGroup, Title: "g"}}

	tests := []struct {
		name string
		raw  RawUpdate
		want UpdateContent
	}{
		{"edited_message", RawUpdate{EditedMessage: msg}, UpdateEditedMessage{}},
		{"channel_post", RawUpdate{ChannelPost: msg}, UpdateChannelPost{}},
		{"edited_channel_post", RawUpdate{EditedChannelPost: msg}, UpdateEditedChannelPost{}},
		{"inline_query", RawUpdate{InlineQuery: &InlineQuery{ID: "q"}}, UpdateInlineQuery{}},
		{"chosen_inline_result", RawUpdate{ChosenInlineResult: &ChosenInlineResult{ResultID: "r"}}, UpdateChosenInlineResult{}},
		{"callback_query", RawUpdate{CallbackQuery: &CallbackQuery{ID: "c"}}, UpdateCallbackQuery{}},
		{"shipping_query", RawUpdate{ShippingQuery: &ShippingQuery{ID: "s"}}, UpdateShippingQuery{}},
		{"pre_checkout_query", RawUpdate{PreCheckoutQuery: &PreCheckoutQuery{ID: "p"}}, UpdatePreCheckoutQuery{}},
		{"poll", RawUpdate{Poll: &Poll{ID: "poll"}}, UpdatePoll{}},
		{"poll_answer", RawUpdate{PollAnswer: &PollAnswer{PollID: "poll"}}, UpdatePollAnswer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.raw.Normalize()
			assert.IsType(t, tt.want, u.Content)
		})
	}
}

func TestRawUpdateNormalize_EmptyRecord_Unknown(t *testing.T) {
	u := RawUpdate{UpdateID: 9}.Normalize()

	assert.Equal(t, int64(9), u.UpdateID)
	assert.IsType(t, UpdateUnknown{}, u.Content)
}

func TestRawUpdateNormalize_FirstPopulatedFieldWins(t *testing.T) {
	// Both message and callback_query set; message comes first in the
	// resolution order and wins.
	raw := RawUpdate{
		UpdateID: 1,
		Message: &RawMessage{
			MessageID: 1,
			Date:      1700000000,
			Chat:      RawChat{ID: 1, Type: ChatTypePrivate},
			Text:      "hi",
		},
		CallbackQuery: &CallbackQuery{ID: "cb"},
	}

	u := raw.Normalize()
	assert.IsType(t, UpdateMessage{}, u.Content)
}

func TestDecodeUpdate_ValidPayload(t *testing.T) {
	payload := `{
		"update_id": 123456,
		"message": {
			"message_id": 1,
			"date": 1700000000,
			"chat": {"id": 77, "type": "private", "first_name": "Ada"},
			"from": {"id": 77, "is_bot": false, "first_name": "Ada"},
			"text": "/start",
			"entities": [{"type": "bot_command", "offset": 0, "length": 6}]
		}
	}`

	u, err := DecodeUpdate([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, int64(123456), u.UpdateID)
	msg := u.Message()
	require.NotNil(t, msg)
	text, entities := msg.Text()
	assert.Equal(t, "/start", text)
	require.Len(t, entities, 1)
	assert.True(t, entities[0].IsBotCommand())
	assert.Equal(t, "/start", entities[0].CoveredText(text))
}

func TestDecodeUpdate_MalformedJSON_DecodeError(t *testing.T) {
	_, err := DecodeUpdate([]byte(`{"update_id": `))

	require.Error(t, err)
	var decErr *DecodeError
	assert.True(t, errors.As(err, &decErr), "expected *DecodeError, got %T", err)
}

func TestDecodeUpdate_UnknownUpdateKind_NoError(t *testing.T) {
	// A future update kind this library does not model must not fail.
	payload := `{"update_id": 5, "chat_boost": {"boost_id": "abc"}}`

	u, err := DecodeUpdate([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.UpdateID)
	assert.IsType(t, UpdateUnknown{}, u.Content)
	assert.Nil(t, u.Message())
}

func TestUpdate_JSONRoundTrip(t *testing.T) {
	payload := `{
		"update_id": 10,
		"message": {
			"message_id": 2,
			"date": 1700000000,
			"chat": {"id": 5, "type": "supergroup", "title": "devs", "username": "devchat"},
			"from": {"id": 9, "is_bot": false, "first_name": "Lin"},
			"text": "round trip"
		}
	}`

	var u Update
	require.NoError(t, json.Unmarshal([]byte(payload), &u))

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var again Update
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, u, again)
}

func TestUpdateRaw_InverseOfNormalize(t *testing.T) {
	raw := RawUpdate{
		UpdateID: 3,
		CallbackQuery: &CallbackQuery{
			ID:   "cb-1",
			From: User{ID: 1, FirstName: "Ada"},
			Data: "button-1",
		},
	}

	got := raw.Normalize().Raw()
	assert.Equal(t, raw, got)
}

func TestUpdateMessage_MessageAccessor(t *testing.T) {
	rawMsg := &RawMessage{
		MessageID: 11,
		Date:      1700000000,
		Chat:      RawChat{ID: 4, Type: ChatTypeChannel, Title: "news"},
		Text:      "post",
	}

	tests := []struct {
		name   string
		raw    RawUpdate
		hasMsg bool
	}{
		{"message", RawUpdate{Message: rawMsg}, true},
		{"edited_message", RawUpdate{EditedMessage: rawMsg}, true},
		{"channel_post", RawUpdate{ChannelPost: rawMsg}, true},
		{"edited_channel_post", RawUpdate{EditedChannelPost: rawMsg}, true},
		{"poll", RawUpdate{Poll: &Poll{ID: "p"}}, false},
		{"empty", RawUpdate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.raw.Normalize()
			if tt.hasMsg {
				require.NotNil(t, u.Message())
				assert.Equal(t, int64(11), u.Message().MessageID)
			} else {
				assert.Nil(t, u.Message())
			}
		})
	}
}

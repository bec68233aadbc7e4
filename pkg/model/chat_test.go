package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawChatNormalize_Variants(t *testing.T) {
	tests := []struct {
		name string
		raw  RawChat
		want Chat
	}{
		{
			name: "private",
			raw:  RawChat{ID: 1, Type: ChatTypePrivate, FirstName: "Ada", LastName: "L", Username: "ada", Bio: "hi"},
			want: PrivateChat{ID: 1, FirstName: "Ada", LastName: "L", Username: "ada", Bio: "hi"},
		},
		{
			name: "group",
			raw:  RawChat{ID: -2, Type: ChatTypeGroup, Title: "friends", InviteLink: "t.me/x"},
			want: GroupChat{ID: -2, Title: "friends", InviteLink: "t.me/x"},
		},
		{
			name: "supergroup",
			raw:  RawChat{ID: -100, Type: ChatTypeSuperGroup, Title: "devs", Username: "devchat", SlowModeDelay: 30},
			want: SuperGroupChat{ID: -100, Title: "devs", Username: "devchat", SlowModeDelay: 30},
		},
		{
			name: "channel",
			raw:  RawChat{ID: -200, Type: ChatTypeChannel, Title: "news", Username: "newsfeed"},
			want: ChannelChat{ID: -200, Title: "news", Username: "newsfeed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.raw.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw.ID, got.ChatID())
		})
	}
}

func TestRawChatNormalize_UnknownType_KeepsIdentity(t *testing.T) {
	raw := RawChat{ID: 42, Type: "secret_chat", Title: "hush"}

	got := raw.Normalize()

	unknown, ok := got.(UnknownChat)
	require.True(t, ok, "expected UnknownChat, got %T", got)
	assert.Equal(t, int64(42), unknown.ID)
	assert.Equal(t, "secret_chat", unknown.Type)
	assert.Equal(t, int64(42), got.ChatID())
}

func TestRawChatFrom_RoundTrip(t *testing.T) {
	chats := []RawChat{
		{ID: 1, Type: ChatTypePrivate, FirstName: "Ada"},
		{ID: -2, Type: ChatTypeGroup, Title: "g"},
		{ID: -3, Type: ChatTypeSuperGroup, Title: "sg", Username: "sg", SlowModeDelay: 10},
		{ID: -4, Type: ChatTypeChannel, Title: "ch"},
		{ID: 5, Type: "future_type", Title: "?"},
	}

	for _, raw := range chats {
		t.Run(raw.Type, func(t *testing.T) {
			assert.Equal(t, raw, RawChatFrom(raw.Normalize()))
		})
	}
}

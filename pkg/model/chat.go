package model

// Chat type tags as they appear on the wire.
const (
	ChatTypePrivate    = "private"
	ChatTypeGroup      = "group"
	ChatTypeSuperGroup = "supergroup"
	ChatTypeChannel    = "channel"
)

// RawChat is the flat wire representation of a chat, every optional field
// present. It only exists between decoding and normalization.
type RawChat struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Description string `json:"description,omitempty"`
	InviteLink  string `json:"invite_link,omitempty"`

	Permissions   *ChatPermissions `json:"permissions,omitempty"`
	SlowModeDelay int              `json:"slow_mode_delay,omitempty"`
}

// Chat is the closed polymorphic chat type. Exactly one of the concrete
// variants is produced per raw record; unrecognized type tags become
// UnknownChat so forward-incompatible payloads keep their identity.
type Chat interface {
	// ChatID returns the unique numeric identifier of the chat.
	ChatID() int64

	chat()
}

// PrivateChat is a one-on-one conversation with a user.
type PrivateChat struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Bio       string
}

// GroupChat is a basic group chat.
type GroupChat struct {
	ID          int64
	Title       string
	Permissions *ChatPermissions
	InviteLink  string
}

// SuperGroupChat is a supergroup chat.
type SuperGroupChat struct {
	ID            int64
	Title         string
	Username      string
	Description   string
	Permissions   *ChatPermissions
	SlowModeDelay int
	InviteLink    string
}

// ChannelChat is a broadcast channel.
type ChannelChat struct {
	ID          int64
	Title       string
	Username    string
	Description string
	InviteLink  string
}

// UnknownChat carries the identity of a chat whose type tag this library
// does not model.
type UnknownChat struct {
	ID    int64
	Type  string
	Title string
}

func (c PrivateChat) ChatID() int64    { return c.ID }
func (c GroupChat) ChatID() int64      { return c.ID }
func (c SuperGroupChat) ChatID() int64 { return c.ID }
func (c ChannelChat) ChatID() int64    { return c.ID }
func (c UnknownChat) ChatID() int64    { return c.ID }

func (PrivateChat) chat()    {}
func (GroupChat) chat()      {}
func (SuperGroupChat) chat() {}
func (ChannelChat) chat()    {}
func (UnknownChat) chat()    {}

// ChatPermissions describes the actions a non-administrator member is
// allowed to take in a chat.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages,omitempty"`
	CanSendMediaMessages  bool `json:"can_send_media_messages,omitempty"`
	CanSendPolls          bool `json:"can_send_polls,omitempty"`
	CanSendOtherMessages  bool `json:"can_send_other_messages,omitempty"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews,omitempty"`
	CanChangeInfo         bool `json:"can_change_info,omitempty"`
	CanInviteUsers        bool `json:"can_invite_users,omitempty"`
	CanPinMessages        bool `json:"can_pin_messages,omitempty"`
}

// Normalize converts the raw chat into its closed variant, selected by the
// wire type tag.
func (r RawChat) Normalize() Chat {
	switch r.Type {
	case ChatTypePrivate:
		return PrivateChat{
			ID:        r.ID,
			Username:  r.Username,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Bio:       r.Bio,
		}
	case ChatTypeGroup:
		return GroupChat{
			ID:          r.ID,
			Title:       r.Title,
			Permissions: r.Permissions,
			InviteLink:  r.InviteLink,
		}
	case ChatTypeSuperGroup:
		return SuperGroupChat{
			ID:            r.ID,
			Title:         r.Title,
			Username:      r.Username,
			Description:   r.Description,
			Permissions:   r.Permissions,
			SlowModeDelay: r.SlowModeDelay,
			InviteLink:    r.InviteLink,
		}
	case ChatTypeChannel:
		return ChannelChat{
			ID:          r.ID,
			Title:       r.Title,
			Username:    r.Username,
			Description: r.Description,
			InviteLink:  r.InviteLink,
		}
	default:
		return UnknownChat{ID: r.ID, Type: r.Type, Title: r.Title}
	}
}

// RawChatFrom flattens a chat variant back into its wire representation.
func RawChatFrom(c Chat) RawChat {
	switch v := c.(type) {
	case PrivateChat:
		return RawChat{
			ID:        v.ID,
			Type:      ChatTypePrivate,
			Username:  v.Username,
			FirstName: v.FirstName,
			LastName:  v.LastName,
			Bio:       v.Bio,
		}
	case GroupChat:
		return RawChat{
			ID:          v.ID,
			Type:        ChatTypeGroup,
			Title:       v.Title,
			Permissions: v.Permissions,
			InviteLink:  v.InviteLink,
		}
	case SuperGroupChat:
		return RawChat{
			ID:            v.ID,
			Type:          ChatTypeSuperGroup,
			Title:         v.Title,
			Username:      v.Username,
			Description:   v.Description,
			Permissions:   v.Permissions,
			SlowModeDelay: v.SlowModeDelay,
			InviteLink:    v.InviteLink,
		}
	case ChannelChat:
		return RawChat{
			ID:          v.ID,
			Type:        ChatTypeChannel,
			Title:       v.Title,
			Username:    v.Username,
			Description: v.Description,
			InviteLink:  v.InviteLink,
		}
	case UnknownChat:
		return RawChat{ID: v.ID, Type: v.Type, Title: v.Title}
	default:
		return RawChat{}
	}
}

package model

// RawUpdate is the flat wire representation of an update: every content
// field optional, exactly as the platform serializes it. Raw records exist
// only between decoding and normalization and are never retained.
type RawUpdate struct {
	UpdateID int64 `json:"update_id"`

	Message            *RawMessage         `json:"message,omitempty"`
	EditedMessage      *RawMessage         `json:"edited_message,omitempty"`
	ChannelPost        *RawMessage         `json:"channel_post,omitempty"`
	EditedChannelPost  *RawMessage         `json:"edited_channel_post,omitempty"`
	InlineQuery        *InlineQuery        `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
	CallbackQuery      *CallbackQuery      `json:"callback_query,omitempty"`
	ShippingQuery      *ShippingQuery      `json:"shipping_query,omitempty"`
	PreCheckoutQuery   *PreCheckoutQuery   `json:"pre_checkout_query,omitempty"`
	Poll               *Poll               `json:"poll,omitempty"`
	PollAnswer         *PollAnswer         `json:"poll_answer,omitempty"`
}

// RawMessage is the flat wire representation of a message. One of the
// content fields is expected to be populated; when the platform populates
// more than one, normalization resolves by fixed priority.
type RawMessage struct {
	MessageID  int64    `json:"message_id"`
	From       *User    `json:"from,omitempty"`
	SenderChat *RawChat `json:"sender_chat,omitempty"`
	Date       int64    `json:"date"`
	Chat       RawChat  `json:"chat"`

	ForwardFrom          *User    `json:"forward_from,omitempty"`
	ForwardFromChat      *RawChat `json:"forward_from_chat,omitempty"`
	ForwardFromMessageID int64    `json:"forward_from_message_id,omitempty"`
	ForwardSignature     string   `json:"forward_signature,omitempty"`
	ForwardSenderName    string   `json:"forward_sender_name,omitempty"`
	ForwardDate          int64    `json:"forward_date,omitempty"`

	ReplyToMessage  *RawMessage `json:"reply_to_message,omitempty"`
	ViaBot          *User       `json:"via_bot,omitempty"`
	EditDate        int64       `json:"edit_date,omitempty"`
	MediaGroupID    string      `json:"media_group_id,omitempty"`
	AuthorSignature string      `json:"author_signature,omitempty"`

	Text            string          `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`

	Audio     *Audio       `json:"audio,omitempty"`
	Document  *Document    `json:"document,omitempty"`
	Animation *Animation   `json:"animation,omitempty"`
	Photo     []PhotoSize  `json:"photo,omitempty"`
	Sticker   *Sticker     `json:"sticker,omitempty"`
	Video     *Video       `json:"video,omitempty"`
	Voice     *Voice       `json:"voice,omitempty"`
	VideoNote *VideoNote   `json:"video_note,omitempty"`
	Contact   *Contact     `json:"contact,omitempty"`
	Location  *Location    `json:"location,omitempty"`
	Venue     *Venue       `json:"venue,omitempty"`
	Poll      *Poll        `json:"poll,omitempty"`
	Dice      *Dice        `json:"dice,omitempty"`

	NewChatMembers []User      `json:"new_chat_members,omitempty"`
	LeftChatMember *User       `json:"left_chat_member,omitempty"`
	NewChatTitle   string      `json:"new_chat_title,omitempty"`
	NewChatPhoto   []PhotoSize `json:"new_chat_photo,omitempty"`

	DeleteChatPhoto       bool `json:"delete_chat_photo,omitempty"`
	GroupChatCreated      bool `json:"group_chat_created,omitempty"`
	SupergroupChatCreated bool `json:"supergroup_chat_created,omitempty"`
	ChannelChatCreated    bool `json:"channel_chat_created,omitempty"`

	MessageAutoDeleteTimerChanged *MessageAutoDeleteTimerChanged `json:"message_auto_delete_timer_changed,omitempty"`

	MigrateToChatID   *int64 `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID *int64 `json:"migrate_from_chat_id,omitempty"`

	PinnedMessage *RawMessage `json:"pinned_message,omitempty"`

	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

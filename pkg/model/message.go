package model

import "time"

// Message is the normalized message: metadata plus exactly one content
// variant.
type Message struct {
	MessageID  int64
	From       *User
	SenderChat Chat
	Date       time.Time
	Chat       Chat

	// Forward is set when the message was forwarded.
	Forward *Forward

	// ReplyTo is the message this one replies to. Its own ReplyTo is
	// always nil; the upstream contract bounds reply chains to one level
	// and anything deeper is dropped during normalization.
	ReplyTo *Message

	ViaBot          *User
	EditDate        *time.Time
	AuthorSignature string

	Content MessageContent

	ReplyMarkup *InlineKeyboardMarkup
}

// Forward groups the forward metadata of a forwarded message.
type Forward struct {
	From          *User
	FromChat      Chat
	FromMessageID int64
	Signature     string
	SenderName    string
	Date          time.Time
}

// MessageContent is the closed content variant of a Message. Exactly one
// variant is produced per message; unrecognized payloads become
// UnknownContent.
type MessageContent interface {
	messageContent()
}

// Caption pairs a media caption with its entities.
type Caption struct {
	Text     string
	Entities []MessageEntity
}

type TextContent struct {
	Text     string
	Entities []MessageEntity
}

type VideoContent struct {
	Video        Video
	Caption      Caption
	MediaGroupID string
}

type AnimationContent struct {
	Animation Animation
	Caption   Caption
}

type PhotoContent struct {
	Photo        []PhotoSize
	Caption      Caption
	MediaGroupID string
}

// PinnedMessageContent is a service message about a pinned message. The
// pinned message itself carries no reply pointer.
type PinnedMessageContent struct {
	Message *Message
}

type AudioContent struct {
	Audio   Audio
	Caption Caption
}

type DocumentContent struct {
	Document Document
	Caption  Caption
}

type VoiceContent struct {
	Voice   Voice
	Caption Caption
}

type StickerContent struct {
	Sticker Sticker
}

type VideoNoteContent struct {
	VideoNote VideoNote
}

type ContactContent struct {
	Contact Contact
}

type LocationContent struct {
	Location Location
}

type VenueContent struct {
	Venue Venue
}

type PollContent struct {
	Poll Poll
}

type DiceContent struct {
	Dice Dice
}

type NewChatMembersContent struct {
	Members []User
}

type LeftChatMemberContent struct {
	Member User
}

type NewChatTitleContent struct {
	Title string
}

type NewChatPhotoContent struct {
	Photo []PhotoSize
}

type AutoDeleteTimerContent struct {
	Timer MessageAutoDeleteTimerChanged
}

type MigrateToChatIDContent struct {
	ChatID int64
}

type MigrateFromChatIDContent struct {
	ChatID int64
}

type DeleteChatPhotoContent struct{}

type GroupChatCreatedContent struct{}

type SupergroupChatCreatedContent struct{}

type ChannelChatCreatedContent struct{}

// UnknownContent is the fallback for messages whose content the library
// does not model.
type UnknownContent struct{}

func (TextContent) messageContent()                  {}
func (VideoContent) messageContent()                 {}
func (AnimationContent) messageContent()             {}
func (PhotoContent) messageContent()                 {}
func (PinnedMessageContent) messageContent()         {}
func (AudioContent) messageContent()                 {}
func (DocumentContent) messageContent()              {}
func (VoiceContent) messageContent()                 {}
func (StickerContent) messageContent()               {}
func (VideoNoteContent) messageContent()             {}
func (ContactContent) messageContent()               {}
func (LocationContent) messageContent()              {}
func (VenueContent) messageContent()                 {}
func (PollContent) messageContent()                  {}
func (DiceContent) messageContent()                  {}
func (NewChatMembersContent) messageContent()        {}
func (LeftChatMemberContent) messageContent()        {}
func (NewChatTitleContent) messageContent()          {}
func (NewChatPhotoContent) messageContent()          {}
func (AutoDeleteTimerContent) messageContent()       {}
func (MigrateToChatIDContent) messageContent()       {}
func (MigrateFromChatIDContent) messageContent()     {}
func (DeleteChatPhotoContent) messageContent()       {}
func (GroupChatCreatedContent) messageContent()      {}
func (SupergroupChatCreatedContent) messageContent() {}
func (ChannelChatCreatedContent) messageContent()    {}
func (UnknownContent) messageContent()               {}

// Text returns the text of a text message, or the caption of a captioned
// media message, together with its entities. For everything else it returns
// empty values.
func (m Message) Text() (string, []MessageEntity) {
	switch c := m.Content.(type) {
	case TextContent:
		return c.Text, c.Entities
	case VideoContent:
		return c.Caption.Text, c.Caption.Entities
	case AnimationContent:
		return c.Caption.Text, c.Caption.Entities
	case PhotoContent:
		return c.Caption.Text, c.Caption.Entities
	case AudioContent:
		return c.Caption.Text, c.Caption.Entities
	case DocumentContent:
		return c.Caption.Text, c.Caption.Entities
	case VoiceContent:
		return c.Caption.Text, c.Caption.Entities
	default:
		return "", nil
	}
}

// Normalize converts the raw message into its closed representation. It
// never fails: unmodeled content maps to UnknownContent.
func (r *RawMessage) Normalize() Message {
	msg := Message{
		MessageID:       r.MessageID,
		From:            r.From,
		Date:            time.Unix(r.Date, 0).UTC(),
		Chat:            r.Chat.Normalize(),
		ViaBot:          r.ViaBot,
		AuthorSignature: r.AuthorSignature,
		ReplyMarkup:     r.ReplyMarkup,
		Content:         normalizeContent(r),
	}
	if r.SenderChat != nil {
		msg.SenderChat = r.SenderChat.Normalize()
	}
	if r.EditDate != 0 {
		t := time.Unix(r.EditDate, 0).UTC()
		msg.EditDate = &t
	}
	if r.ForwardDate != 0 {
		fwd := &Forward{
			From:          r.ForwardFrom,
			FromMessageID: r.ForwardFromMessageID,
			Signature:     r.ForwardSignature,
			SenderName:    r.ForwardSenderName,
			Date:          time.Unix(r.ForwardDate, 0).UTC(),
		}
		if r.ForwardFromChat != nil {
			fwd.FromChat = r.ForwardFromChat.Normalize()
		}
		msg.Forward = fwd
	}
	if r.ReplyToMessage != nil {
		reply := r.ReplyToMessage.Normalize()
		// One level deep by upstream contract; anything deeper is cut.
		reply.ReplyTo = nil
		msg.ReplyTo = &reply
	}
	return msg
}

// normalizeContent picks the content variant by evaluating the optional
// fields in fixed priority order; the first populated field wins. This is
// the documented resolution when the platform populates more than one.
func normalizeContent(r *RawMessage) MessageContent {
	caption := Caption{Text: r.Caption, Entities: r.CaptionEntities}

	switch {
	case r.Text != "":
		return TextContent{Text: r.Text, Entities: r.Entities}
	case r.Video != nil:
		return VideoContent{Video: *r.Video, Caption: caption, MediaGroupID: r.MediaGroupID}
	case r.Animation != nil:
		return AnimationContent{Animation: *r.Animation, Caption: caption}
	case r.Photo != nil:
		return PhotoContent{Photo: r.Photo, Caption: caption, MediaGroupID: r.MediaGroupID}
	case r.PinnedMessage != nil:
		pinned := r.PinnedMessage.Normalize()
		pinned.ReplyTo = nil
		return PinnedMessageContent{Message: &pinned}
	case r.Audio != nil:
		return AudioContent{Audio: *r.Audio, Caption: caption}
	case r.Document != nil:
		return DocumentContent{Document: *r.Document, Caption: caption}
	case r.Voice != nil:
		return VoiceContent{Voice: *r.Voice, Caption: caption}
	case r.Sticker != nil:
		return StickerContent{Sticker: *r.Sticker}
	case r.VideoNote != nil:
		return VideoNoteContent{VideoNote: *r.VideoNote}
	case r.Contact != nil:
		return ContactContent{Contact: *r.Contact}
	case r.Location != nil:
		return LocationContent{Location: *r.Location}
	case r.Venue != nil:
		return VenueContent{Venue: *r.Venue}
	case r.Poll != nil:
		return PollContent{Poll: *r.Poll}
	case r.Dice != nil:
		return DiceContent{Dice: *r.Dice}
	case r.NewChatMembers != nil:
		return NewChatMembersContent{Members: r.NewChatMembers}
	case r.LeftChatMember != nil:
		return LeftChatMemberContent{Member: *r.LeftChatMember}
	case r.NewChatTitle != "":
		return NewChatTitleContent{Title: r.NewChatTitle}
	case r.NewChatPhoto != nil:
		return NewChatPhotoContent{Photo: r.NewChatPhoto}
	case r.MessageAutoDeleteTimerChanged != nil:
		return AutoDeleteTimerContent{Timer: *r.MessageAutoDeleteTimerChanged}
	case r.MigrateToChatID != nil:
		return MigrateToChatIDContent{ChatID: *r.MigrateToChatID}
	case r.MigrateFromChatID != nil:
		return MigrateFromChatIDContent{ChatID: *r.MigrateFromChatID}
	case r.DeleteChatPhoto:
		return DeleteChatPhotoContent{}
	case r.GroupChatCreated:
		return GroupChatCreatedContent{}
	case r.SupergroupChatCreated:
		return SupergroupChatCreatedContent{}
	case r.ChannelChatCreated:
		return ChannelChatCreatedContent{}
	default:
		return UnknownContent{}
	}
}

// RawMessageFrom flattens a normalized message back into its wire
// representation. It is the inverse of Normalize for every field the domain
// model represents.
func RawMessageFrom(m Message) *RawMessage {
	raw := &RawMessage{
		MessageID:       m.MessageID,
		From:            m.From,
		Date:            m.Date.Unix(),
		Chat:            RawChatFrom(m.Chat),
		ViaBot:          m.ViaBot,
		AuthorSignature: m.AuthorSignature,
		ReplyMarkup:     m.ReplyMarkup,
	}
	if m.SenderChat != nil {
		sc := RawChatFrom(m.SenderChat)
		raw.SenderChat = &sc
	}
	if m.EditDate != nil {
		raw.EditDate = m.EditDate.Unix()
	}
	if m.Forward != nil {
		raw.ForwardFrom = m.Forward.From
		raw.ForwardFromMessageID = m.Forward.FromMessageID
		raw.ForwardSignature = m.Forward.Signature
		raw.ForwardSenderName = m.Forward.SenderName
		raw.ForwardDate = m.Forward.Date.Unix()
		if m.Forward.FromChat != nil {
			fc := RawChatFrom(m.Forward.FromChat)
			raw.ForwardFromChat = &fc
		}
	}
	if m.ReplyTo != nil {
		raw.ReplyToMessage = RawMessageFrom(*m.ReplyTo)
	}

	switch c := m.Content.(type) {
	case TextContent:
		raw.Text = c.Text
		raw.Entities = c.Entities
	case VideoContent:
		raw.Video = &c.Video
		raw.MediaGroupID = c.MediaGroupID
		setCaption(raw, c.Caption)
	case AnimationContent:
		raw.Animation = &c.Animation
		setCaption(raw, c.Caption)
	case PhotoContent:
		raw.Photo = c.Photo
		raw.MediaGroupID = c.MediaGroupID
		setCaption(raw, c.Caption)
	case PinnedMessageContent:
		raw.PinnedMessage = RawMessageFrom(*c.Message)
	case AudioContent:
		raw.Audio = &c.Audio
		setCaption(raw, c.Caption)
	case DocumentContent:
		raw.Document = &c.Document
		setCaption(raw, c.Caption)
	case VoiceContent:
		raw.Voice = &c.Voice
		setCaption(raw, c.Caption)
	case StickerContent:
		raw.Sticker = &c.Sticker
	case VideoNoteContent:
		raw.VideoNote = &c.VideoNote
	case ContactContent:
		raw.Contact = &c.Contact
	case LocationContent:
		raw.Location = &c.Location
	case VenueContent:
		raw.Venue = &c.Venue
	case PollContent:
		raw.Poll = &c.Poll
	case DiceContent:
		raw.Dice = &c.Dice
	case NewChatMembersContent:
		raw.NewChatMembers = c.Members
	case LeftChatMemberContent:
		raw.LeftChatMember = &c.Member
	case NewChatTitleContent:
		raw.NewChatTitle = c.Title
	case NewChatPhotoContent:
		raw.NewChatPhoto = c.Photo
	case AutoDeleteTimerContent:
		raw.MessageAutoDeleteTimerChanged = &c.Timer
	case MigrateToChatIDContent:
		raw.MigrateToChatID = &c.ChatID
	case MigrateFromChatIDContent:
		raw.MigrateFromChatID = &c.ChatID
	case DeleteChatPhotoContent:
		raw.DeleteChatPhoto = true
	case GroupChatCreatedContent:
		raw.GroupChatCreated = true
	case SupergroupChatCreatedContent:
		raw.SupergroupChatCreated = true
	case ChannelChatCreatedContent:
		raw.ChannelChatCreated = true
	}
	return raw
}

func setCaption(raw *RawMessage, c Caption) {
	raw.Caption = c.Text
	raw.CaptionEntities = c.Entities
}

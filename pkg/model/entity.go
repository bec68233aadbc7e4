package model

import "unicode/utf16"

// Message entity types as they appear on the wire.
const (
	EntityMention       = "mention"
	EntityHashtag       = "hashtag"
	EntityCashtag       = "cashtag"
	EntityBotCommand    = "bot_command"
	EntityURL           = "url"
	EntityEmail         = "email"
	EntityPhoneNumber   = "phone_number"
	EntityBold          = "bold"
	EntityItalic        = "italic"
	EntityUnderline     = "underline"
	EntityStrikethrough = "strikethrough"
	EntityCode          = "code"
	EntityPre           = "pre"
	EntityTextLink      = "text_link"
	EntityTextMention   = "text_mention"
)

// MessageEntity marks a special region (command, mention, link, ...) inside
// message text or a caption. Offset and Length are counted in UTF-16 code
// units, as mandated by the upstream API.
type MessageEntity struct {
	Type     string `json:"type"`
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
	URL      string `json:"url,omitempty"`
	User     *User  `json:"user,omitempty"`
	Language string `json:"language,omitempty"`
}

// IsBotCommand reports whether the entity marks a /command token.
func (e MessageEntity) IsBotCommand() bool {
	return e.Type == EntityBotCommand
}

// CoveredText returns the substring of text the entity covers, honoring the
// UTF-16 code unit offsets of the wire format. Out-of-range entities yield
// the part of the text they do cover.
func (e MessageEntity) CoveredText(text string) string {
	if e.Offset < 0 || e.Length <= 0 {
		return ""
	}
	units := utf16.Encode([]rune(text))
	if e.Offset >= len(units) {
		return ""
	}
	end := e.Offset + e.Length
	if end > len(units) {
		end = len(units)
	}
	return string(utf16.Decode(units[e.Offset:end]))
}

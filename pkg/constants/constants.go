package constants

import "time"

// Telegram bot API endpoint base. The bot token is appended directly.
const APIBaseURL = "https://api.telegram.org/bot"

// Long polling defaults and bounds
const (
	// DefaultPollLimit is the default batch size requested per getUpdates call
	DefaultPollLimit = 100
	// MinPollLimit is the smallest batch size the platform accepts
	MinPollLimit = 1
	// MaxPollLimit is the largest batch size the platform accepts
	MaxPollLimit = 100
	// DefaultPollTimeout is the default server-side long poll hold time
	DefaultPollTimeout = 5 * time.Second
	// DefaultPollMinInterval is the client-side floor between consecutive
	// getUpdates requests; it keeps a zero server timeout from turning the
	// empty-result loop into a hot loop
	DefaultPollMinInterval = 200 * time.Millisecond
)

// Webhook defaults
const (
	// DefaultWebhookAddr is the default listener address
	DefaultWebhookAddr = "127.0.0.1:8006"
	// DefaultWebhookPath is the default request path
	DefaultWebhookPath = "/"
	// DefaultWebhookQueueSize is the capacity of the bounded update channel;
	// a full queue delays HTTP responses to signal the platform to slow down
	DefaultWebhookQueueSize = 1000
	// WebhookShutdownTimeout bounds the drain of in-flight requests
	WebhookShutdownTimeout = 10 * time.Second
)

// Outbound API defaults
const (
	// DefaultRequestTimeout is the base HTTP client timeout; long poll
	// requests extend it by the server-side poll timeout
	DefaultRequestTimeout = 30 * time.Second
	// FormDataBoundary is the fixed multipart boundary used by Upload
	FormDataBoundary = "----------botpipe-form-data-boundary"
	// MaxMessageLength is Telegram's message character limit
	MaxMessageLength = 4096
)

// Token masking
const (
	// MinTokenLengthForMasking is the minimum token length to apply masking
	MinTokenLengthForMasking = 10
	// TokenMaskPrefixLength is the length of prefix to show before masking
	TokenMaskPrefixLength = 7
	// TokenMaskSuffixLength is the length of suffix to show after masking
	TokenMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)

package bot

import (
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/constants"
)

// PollerOptions configure the long poll source.
type PollerOptions struct {
	// Offset is the initial offset of the first request. Zero requests
	// everything still pending on the platform side.
	Offset int64

	// Limit is the batch size per request, clamped to 1-100.
	Limit int

	// Timeout is the server-side hold time of an empty poll. The server
	// honors it; there is no client-side abort once a request is sent.
	Timeout time.Duration

	// MinInterval is the client-side floor between consecutive requests.
	// It only matters when Timeout is misconfigured to zero, which would
	// otherwise turn the empty-result loop into a hot loop.
	MinInterval time.Duration

	// AllowedUpdates filters the update types the platform delivers.
	AllowedUpdates []api.UpdateType
}

func (o PollerOptions) withDefaults() PollerOptions {
	if o.Limit == 0 {
		o.Limit = constants.DefaultPollLimit
	}
	if o.Timeout == 0 {
		o.Timeout = constants.DefaultPollTimeout
	}
	if o.MinInterval == 0 {
		o.MinInterval = constants.DefaultPollMinInterval
	}
	return o
}

// WebhookOptions configure the webhook source.
type WebhookOptions struct {
	// Addr is the listen address, host:port.
	Addr string

	// Path is the request path updates are delivered to. Anything else
	// gets a 404.
	Path string

	// URL is the public webhook URL. When set, it is registered with the
	// platform on start; when empty, registration is assumed to have
	// happened out of band.
	URL string

	// QueueSize bounds the update channel. A full queue suspends request
	// handling, delaying HTTP responses so the platform slows delivery.
	QueueSize int

	// MaxConnections and DropPendingUpdates are passed through to the
	// platform-side webhook registration.
	MaxConnections     int
	DropPendingUpdates bool
}

func (o WebhookOptions) withDefaults() WebhookOptions {
	if o.Addr == "" {
		o.Addr = constants.DefaultWebhookAddr
	}
	if o.Path == "" {
		o.Path = constants.DefaultWebhookPath
	}
	if o.QueueSize == 0 {
		o.QueueSize = constants.DefaultWebhookQueueSize
	}
	return o
}

func (o WebhookOptions) validate() error {
	if _, _, err := net.SplitHostPort(o.Addr); err != nil {
		return &ConfigError{Option: "webhook address", Reason: err.Error()}
	}
	if !strings.HasPrefix(o.Path, "/") {
		return &ConfigError{Option: "webhook path", Reason: "must start with /"}
	}
	if o.URL != "" {
		u, err := url.Parse(o.URL)
		if err != nil {
			return &ConfigError{Option: "webhook url", Reason: err.Error()}
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return &ConfigError{Option: "webhook url", Reason: "scheme must be http or https"}
		}
	}
	if o.QueueSize < 0 {
		return &ConfigError{Option: "webhook queue size", Reason: "must not be negative"}
	}
	return nil
}

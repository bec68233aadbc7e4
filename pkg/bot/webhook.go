package bot

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
)

// Webhook is the push-based update source: an HTTP listener that accepts
// single-update payloads from the platform and forwards them through a
// bounded channel.
//
// Backpressure is deliberate: when the channel is full the push suspends,
// which delays the HTTP response and signals the platform to slow
// delivery. The platform owns the retry policy for non-200 responses.
type Webhook struct {
	opts   WebhookOptions
	server *http.Server
	ln     net.Listener

	updates chan model.Update
	done    chan struct{}

	closeOnce sync.Once
	inflight  sync.WaitGroup

	mu       sync.Mutex
	closed   bool
	addr     string
	serveErr error
}

// NewWebhook validates the options and prepares the listener.
func NewWebhook(opts WebhookOptions) (*Webhook, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	w := &Webhook{
		opts:    opts,
		updates: make(chan model.Update, opts.QueueSize),
		done:    make(chan struct{}),
	}
	w.server = &http.Server{
		Addr:    opts.Addr,
		Handler: http.HandlerFunc(w.handle),
	}
	return w, nil
}

// Start binds the listener and begins serving in the background. The
// updates channel is closed once the listener stops and all in-flight
// requests have settled.
func (w *Webhook) Start() error {
	ln, err := net.Listen("tcp", w.opts.Addr)
	if err != nil {
		return &ConfigError{Option: "webhook address", Reason: err.Error()}
	}
	w.ln = ln
	w.mu.Lock()
	w.addr = ln.Addr().String()
	w.mu.Unlock()

	logger.WithFields(logrus.Fields{
		"address": w.Addr(),
		"path":    w.opts.Path,
	}).Info("webhook-listener-started")

	go func() {
		if err := w.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			w.mu.Lock()
			w.serveErr = err
			w.mu.Unlock()
			logger.Errorf("webhook-listener-error: %v", err)
			w.closeChannels()
		}
		logger.Info("webhook-listener-stopped")
	}()
	return nil
}

// Addr returns the bound listener address once Start has returned. It is
// the resolved form of the configured address, with any ephemeral port
// filled in.
func (w *Webhook) Addr() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addr
}

// Updates returns the bounded channel of incoming updates. It is closed
// when the listener stops.
func (w *Webhook) Updates() <-chan model.Update {
	return w.updates
}

// Shutdown stops accepting new connections and lets in-flight requests
// drain within the context's deadline; a consumer that keeps receiving
// lets blocked pushes complete with a 200 during that window. Only after
// the drain are senders still parked on a full queue released with a 500
// and the updates channel closed.
func (w *Webhook) Shutdown(ctx context.Context) error {
	err := w.server.Shutdown(ctx)
	w.closeChannels()
	return err
}

// Err reports a listener failure, if any, once the updates channel is
// closed.
func (w *Webhook) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.serveErr
}

// closeChannels releases parked senders and then closes the updates
// channel. New pushes are refused first, so no handler can be sending by
// the time the channel closes.
func (w *Webhook) closeChannels() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.done)
		w.inflight.Wait()
		close(w.updates)
	})
}

func (w *Webhook) handle(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost || req.URL.Path != w.opts.Path {
		rw.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		logger.Errorf("webhook-body-read-failed: %v", err)
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	update, err := model.DecodeUpdate(body)
	if err != nil {
		// Drop the event; the platform decides whether to retry.
		logger.WithField("error", err).Error("webhook-update-decode-failed")
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()
	defer w.inflight.Done()

	select {
	case w.updates <- update:
		logger.WithField("update_id", update.UpdateID).Debug("webhook-update-queued")
		rw.WriteHeader(http.StatusOK)
	case <-w.done:
		rw.WriteHeader(http.StatusInternalServerError)
	}
}

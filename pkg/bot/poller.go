package bot

import (
	"context"

	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Poller is the pull-based update source. It repeatedly requests pending
// update batches with an offset cursor and yields them one at a time, in
// received order, through Next.
//
// A Poller is meant for a single consumer; Next must not be called
// concurrently.
type Poller struct {
	api     api.API
	opts    PollerOptions
	limiter *rate.Limiter

	buffer []model.Update

	// watermark is the highest update id ever observed; -1 until the
	// first non-empty batch. The next request's offset is watermark+1.
	watermark int64
}

// NewPoller creates a poller over the given API handle.
func NewPoller(a api.API, opts PollerOptions) *Poller {
	opts = opts.withDefaults()
	watermark := int64(-1)
	if opts.Offset > 0 {
		watermark = opts.Offset - 1
	}
	return &Poller{
		api:       a,
		opts:      opts,
		limiter:   rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		watermark: watermark,
	}
}

// Next returns the next pending update. It pops the local buffer when
// non-empty and otherwise requests a fresh batch, re-requesting
// immediately on an empty result. Throttling of the empty-result loop is
// the server-side timeout's job; the limiter only guards against a zero
// timeout. A retrieval error is returned to the caller as-is and the next
// call starts over with a fresh request.
func (p *Poller) Next(ctx context.Context) (model.Update, error) {
	if len(p.buffer) > 0 {
		return p.pop(), nil
	}

	for {
		if err := p.limiter.Wait(ctx); err != nil {
			return model.Update{}, err
		}

		batch, err := p.api.GetUpdates(ctx, api.GetUpdatesRequest{
			Offset:         p.watermark + 1,
			Limit:          p.opts.Limit,
			Timeout:        int(p.opts.Timeout.Seconds()),
			AllowedUpdates: p.opts.AllowedUpdates,
		})
		if err != nil {
			return model.Update{}, err
		}
		if len(batch) == 0 {
			continue
		}

		for _, u := range batch {
			if u.UpdateID > p.watermark {
				p.watermark = u.UpdateID
			}
		}
		p.buffer = append(p.buffer, batch...)

		logger.WithFields(logrus.Fields{
			"batch_size": len(batch),
			"watermark":  p.watermark,
		}).Debug("long-poll-batch-received")

		return p.pop(), nil
	}
}

func (p *Poller) pop() model.Update {
	u := p.buffer[0]
	p.buffer = p.buffer[1:]
	return u
}

package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_EmptyToken(t *testing.T) {
	_, err := NewClient("")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "token")
}

func TestClientDispatch_FansOutToAllSubscribers(t *testing.T) {
	c := NewClientWithAPI(newFakeAPI())

	var wg sync.WaitGroup
	wg.Add(3)
	var mu sync.Mutex
	seen := make(map[int]int64)
	for i := 0; i < 3; i++ {
		i := i
		c.Subscribe(func(ctx *Context, u model.Update) {
			mu.Lock()
			seen[i] = u.UpdateID
			mu.Unlock()
			wg.Done()
		})
	}

	c.dispatch(textUpdate(7, "hello"))
	waitGroupWithin(t, &wg, 2*time.Second)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[int]int64{0: 7, 1: 7, 2: 7}, seen)
}

func TestClientDispatch_PanickingSubscriberDoesNotTouchSiblings(t *testing.T) {
	c := NewClientWithAPI(newFakeAPI())

	var wg sync.WaitGroup
	wg.Add(1)
	c.Subscribe(func(ctx *Context, u model.Update) {
		panic("subscriber bug")
	})
	c.Subscribe(func(ctx *Context, u model.Update) {
		wg.Done()
	})

	c.dispatch(textUpdate(1, "x"))
	waitGroupWithin(t, &wg, 2*time.Second)
}

func TestClientDispatch_RawSubscribersSeeWireForm(t *testing.T) {
	c := NewClientWithAPI(newFakeAPI())

	got := make(chan model.RawUpdate, 1)
	c.SubscribeRaw(func(ctx *Context, raw model.RawUpdate) {
		got <- raw
	})

	c.dispatch(textUpdate(9, "wire"))

	select {
	case raw := <-got:
		assert.Equal(t, int64(9), raw.UpdateID)
		require.NotNil(t, raw.Message)
		assert.Equal(t, "wire", raw.Message.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("raw subscriber did not run")
	}
}

func TestClientDispatch_CommandsAndSubscribersBothFire(t *testing.T) {
	c := NewClientWithAPI(newFakeAPI())
	c.SetBotName("pipebot")

	var wg sync.WaitGroup
	wg.Add(2)
	c.Subscribe(func(ctx *Context, u model.Update) {
		wg.Done()
	})
	c.RegisterCommand("ping", "", func(ctx *Context, msg model.Message) error {
		wg.Done()
		return nil
	})

	c.dispatch(commandUpdate(1, "/ping", ""))
	waitGroupWithin(t, &wg, 2*time.Second)
}

func TestClientDispatch_SharedDataVisibleAcrossHandlers(t *testing.T) {
	c := NewClientWithAPI(newFakeAPI())
	key := NewDataKey[string]("token")
	SetData(c.Data(), key, "secret")

	got := make(chan string, 1)
	c.Subscribe(func(ctx *Context, u model.Update) {
		v, _ := Data(ctx.Data, key)
		got <- v
	})

	c.dispatch(textUpdate(1, "x"))

	select {
	case v := <-got:
		assert.Equal(t, "secret", v)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not run")
	}
}

func TestClientStartPolling_DispatchesUntilCanceled(t *testing.T) {
	f := newFakeAPI()
	f.queue([]model.Update{textUpdate(1, "a"), textUpdate(2, "b")}, nil)

	c := NewClientWithAPI(f)
	var mu sync.Mutex
	var ids []int64
	done := make(chan struct{})
	c.Subscribe(func(ctx *Context, u model.Update) {
		mu.Lock()
		ids = append(ids, u.UpdateID)
		n := len(ids)
		mu.Unlock()
		if n == 2 {
			close(done)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.StartPolling(ctx, PollerOptions{MinInterval: time.Millisecond})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("updates were not dispatched")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(2 * time.Second):
		t.Fatal("StartPolling did not return after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestClientStartPolling_RetrievalErrorReturned(t *testing.T) {
	f := newFakeAPI()
	retrievalErr := errors.New("upstream gone")
	f.queue(nil, retrievalErr)

	c := NewClientWithAPI(f)
	err := c.StartPolling(context.Background(), PollerOptions{MinInterval: time.Millisecond})
	assert.ErrorIs(t, err, retrievalErr)
}

func TestClientStartPolling_ResolvesBotNameAndPublishesCommands(t *testing.T) {
	f := newFakeAPI()
	f.queue(nil, errors.New("stop after prepare"))

	c := NewClientWithAPI(f)
	c.RegisterCommand("ping", "liveness check", func(ctx *Context, msg model.Message) error { return nil })

	_ = c.StartPolling(context.Background(), PollerOptions{MinInterval: time.Millisecond})

	assert.Equal(t, "pipebot", c.engine.botName, "bot name must come from getMe")
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.commands, 1)
	assert.Equal(t, "ping", f.commands[0].Command)
}

func TestClientStartWebhook_RegistersURLAndStopsCleanly(t *testing.T) {
	f := newFakeAPI()
	c := NewClientWithAPI(f)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	opts := WebhookOptions{Addr: "127.0.0.1:0", Path: "/hook", URL: "https://bot.example.com/hook", QueueSize: 4}
	go func() {
		errCh <- c.StartWebhook(ctx, opts)
	}()

	// Registration happens before the listener starts serving.
	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.webhooks) == 1
	}, 2*time.Second, 10*time.Millisecond)
	f.mu.Lock()
	assert.Equal(t, "https://bot.example.com/hook", f.webhooks[0].URL)
	f.mu.Unlock()

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("StartWebhook did not return after cancellation")
	}
}

func waitGroupWithin(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("handlers did not finish in time")
	}
}

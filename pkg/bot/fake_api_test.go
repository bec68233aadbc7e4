package bot

import (
	"context"
	"sync"

	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/model"
)

// fakeAPI is a scripted api.API for source and dispatch tests. Each
// GetUpdates call consumes the next scripted response; requests are
// recorded for offset assertions.
type fakeAPI struct {
	mu sync.Mutex

	me       model.User
	batches  []batchResponse
	requests []api.GetUpdatesRequest

	commands []api.BotCommand
	sent     []api.SendMessageRequest
	webhooks []api.SetWebhookRequest
}

type batchResponse struct {
	updates []model.Update
	err     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{me: model.User{ID: 1, IsBot: true, FirstName: "pipe", Username: "pipebot"}}
}

func (f *fakeAPI) queue(updates []model.Update, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, batchResponse{updates: updates, err: err})
}

func (f *fakeAPI) GetUpdates(ctx context.Context, req api.GetUpdatesRequest) ([]model.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.batches) == 0 {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return next.updates, next.err
}

func (f *fakeAPI) GetMe(ctx context.Context) (*model.User, error) {
	me := f.me
	return &me, nil
}

func (f *fakeAPI) SetMyCommands(ctx context.Context, commands []api.BotCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = commands
	return nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, req api.SendMessageRequest) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	return &model.Message{MessageID: int64(len(f.sent))}, nil
}

func (f *fakeAPI) SetWebhook(ctx context.Context, req api.SetWebhookRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webhooks = append(f.webhooks, req)
	return nil
}

func (f *fakeAPI) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error { return nil }

func (f *fakeAPI) Get(ctx context.Context, endpoint string, payload any) (*api.Response, error) {
	return &api.Response{OK: true}, nil
}

func (f *fakeAPI) Post(ctx context.Context, endpoint string, payload any) (*api.Response, error) {
	return &api.Response{OK: true}, nil
}

func (f *fakeAPI) Upload(ctx context.Context, endpoint string, payload map[string]string, files []api.File) (*api.Response, error) {
	return &api.Response{OK: true}, nil
}

func (f *fakeAPI) recordedRequests() []api.GetUpdatesRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.GetUpdatesRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// textUpdate builds a normalized text-message update for tests.
func textUpdate(id int64, text string) model.Update {
	raw := model.RawUpdate{
		UpdateID: id,
		Message: &model.RawMessage{
			MessageID: id,
			Date:      1700000000,
			From:      &model.User{ID: 10, FirstName: "Ada"},
			Chat:      model.RawChat{ID: 100, Type: model.ChatTypePrivate, FirstName: "Ada"},
			Text:      text,
		},
	}
	return raw.Normalize()
}

// commandUpdate builds a text-message update whose text starts with a
// bot-command entity covering token.
func commandUpdate(id int64, token, rest string) model.Update {
	text := token + rest
	raw := model.RawUpdate{
		UpdateID: id,
		Message: &model.RawMessage{
			MessageID: id,
			Date:      1700000000,
			From:      &model.User{ID: 10, FirstName: "Ada"},
			Chat:      model.RawChat{ID: 100, Type: model.ChatTypePrivate, FirstName: "Ada"},
			Text:      text,
			Entities: []model.MessageEntity{
				{Type: model.EntityBotCommand, Offset: 0, Length: len(token)},
			},
		},
	}
	return raw.Normalize()
}

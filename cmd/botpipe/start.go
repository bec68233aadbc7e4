package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/keepmind9/botpipe/internal/config"
	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/bot"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the botpipe daemon",
		Long:  "Start the botpipe daemon, retrieve updates from Telegram and dispatch them to handlers",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			if err := logger.Init(cfg.LoggerConfig()); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"mode":        cfg.Mode,
				"log_level":   cfg.Logging.Level,
			}).Info("botpipe-starting")

			client := bot.NewClientWithAPI(api.NewClientWithBase(cfg.API.Token, cfg.API.BaseURL, nil))
			if cfg.Mode == config.ModeWebhook {
				client.UseWebhook(cfg.WebhookOptions())
			}

			registerHandlers(client)

			// Stop on SIGINT/SIGTERM; in-flight webhook requests drain,
			// polling stops at the next retrieval call.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var runErr error
			if cfg.Mode == config.ModeWebhook {
				runErr = client.StartWebhook(ctx, cfg.WebhookOptions())
			} else {
				runErr = client.StartPolling(ctx, cfg.PollerOptions())
			}
			if runErr != nil {
				logger.Errorf("botpipe-stopped-with-error: %v", runErr)
				os.Exit(1)
			}
			logger.Info("botpipe-stopped")
		},
	}
)

// updatesSeenKey counts dispatched updates in the shared data store.
var updatesSeenKey = bot.NewDataKey[int64]("updates_seen")

// registerHandlers wires the built-in subscriber and commands.
func registerHandlers(client *bot.Client) {
	client.Subscribe(func(ctx *bot.Context, u model.Update) {
		bot.UpdateData(ctx.Data, updatesSeenKey, func(n int64) int64 { return n + 1 })

		fields := logrus.Fields{"update_id": u.UpdateID}
		if msg := u.Message(); msg != nil {
			fields["chat_id"] = msg.Chat.ChatID()
			fields["message_id"] = msg.MessageID
		}
		logger.WithFields(fields).Info("update-received")
	})

	client.RegisterCommand("ping", "Check that the bot is alive", func(ctx *bot.Context, msg model.Message) error {
		_, err := ctx.API.SendMessage(context.Background(), api.SendMessageRequest{
			ChatID:           msg.Chat.ChatID(),
			Text:             "pong",
			ReplyToMessageID: msg.MessageID,
		})
		return err
	})

	client.RegisterCommand("chatid", "Show the numeric id of this chat", func(ctx *bot.Context, msg model.Message) error {
		_, err := ctx.API.SendMessage(context.Background(), api.SendMessageRequest{
			ChatID: msg.Chat.ChatID(),
			Text:   fmt.Sprintf("chat id: %d", msg.Chat.ChatID()),
		})
		return err
	})
}

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to configuration file")
}

package bot

import (
	"github.com/keepmind9/botpipe/internal/logger"
	"github.com/keepmind9/botpipe/pkg/api"
	"github.com/keepmind9/botpipe/pkg/model"
	"github.com/sirupsen/logrus"
)

// CommandHandler handles one matched bot command. A returned error is
// logged with the command name and discarded; it never reaches the caller.
type CommandHandler func(ctx *Context, msg model.Message) error

// Command is one registered bot command.
type Command struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// CommandEngine matches text-message updates against registered commands.
// Registration is append-only during startup; after the client starts the
// command list is only read, concurrently.
type CommandEngine struct {
	botName  string
	commands []Command
}

// NewCommandEngine creates an engine matching against the given bot
// username. The username may be filled in later via SetBotName, before
// dispatching starts.
func NewCommandEngine(botName string) *CommandEngine {
	return &CommandEngine{botName: botName}
}

// SetBotName sets the bot username used for /name@bot matching.
func (e *CommandEngine) SetBotName(name string) {
	e.botName = name
}

// Register appends a command. Must not be called after dispatching starts.
func (e *CommandEngine) Register(name, description string, handler CommandHandler) {
	e.commands = append(e.commands, Command{
		Name:        name,
		Description: description,
		Handler:     handler,
	})
}

// Commands returns the registered commands in platform wire form, for
// setMyCommands.
func (e *CommandEngine) Commands() []api.BotCommand {
	out := make([]api.BotCommand, 0, len(e.commands))
	for _, c := range e.commands {
		out = append(out, api.BotCommand{Command: c.Name, Description: c.Description})
	}
	return out
}

func (e *CommandEngine) empty() bool { return len(e.commands) == 0 }

// Dispatch fires at most one command for the update: the first registered
// command matching the first bot-command entity of a new text message.
// The handler runs in its own goroutine; failures and panics stay local.
func (e *CommandEngine) Dispatch(ctx *Context, update model.Update) {
	content, ok := update.Content.(model.UpdateMessage)
	if !ok {
		return
	}
	msg := content.Message

	text, ok := firstCommandToken(msg)
	if !ok {
		return
	}

	for _, cmd := range e.commands {
		if !e.matches(text, cmd.Name) {
			continue
		}
		logger.WithFields(logrus.Fields{
			"command": cmd.Name,
			"chat_id": msg.Chat.ChatID(),
		}).Debug("command-matched")

		go e.runCommand(cmd, ctx, msg)
		return
	}
}

// firstCommandToken extracts the text of the first bot-command entity of a
// text message.
func firstCommandToken(msg model.Message) (string, bool) {
	content, ok := msg.Content.(model.TextContent)
	if !ok {
		return "", false
	}
	for _, entity := range content.Entities {
		if entity.IsBotCommand() {
			return entity.CoveredText(content.Text), true
		}
	}
	return "", false
}

// matches applies the exact token rule: /name, or /name@botname when the
// bot username is known. No prefix matching.
func (e *CommandEngine) matches(token, name string) bool {
	if token == "/"+name {
		return true
	}
	return e.botName != "" && token == "/"+name+"@"+e.botName
}

func (e *CommandEngine) runCommand(cmd Command, ctx *Context, msg model.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"command": cmd.Name,
				"panic":   r,
			}).Error("command-handler-panicked")
		}
	}()

	if err := cmd.Handler(ctx, msg); err != nil {
		herr := &HandlerError{Command: cmd.Name, Err: err}
		logger.WithFields(logrus.Fields{
			"command": cmd.Name,
			"error":   herr.Error(),
		}).Error("command-handler-failed")
	}
}

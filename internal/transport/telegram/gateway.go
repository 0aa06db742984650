package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/sirupsen/logrus"
)

const defaultUpdateWorkers uint = 4

// Gateway получает обновления long polling'ом и раздает их воркерам. Обновления разных пользователей
// обрабатываются параллельно, согласованность балансов обеспечивает леджер.
type Gateway struct {
	bot     *telego.Bot
	workers uint
	l       *logrus.Entry
}

func NewGateway(token string, l *logrus.Logger) (*Gateway, error) {
	entry := l.WithFields(logrus.Fields{
		"component": "telegram",
		"module":    "gateway",
	})
	bot, err := telego.NewBot(token, telego.WithLogger(newBotLogger(entry, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return &Gateway{bot: bot, workers: defaultUpdateWorkers, l: entry}, nil
}

// SetWorkers устанавливает кол-во воркеров обработки обновлений.
func (g *Gateway) SetWorkers(workers uint) *Gateway {
	if workers > 0 {
		g.workers = workers
	}
	return g
}

// Run блокирует до отмены ctx. Возвращает ошибку только если не удалось запустить long polling.
func (g *Gateway) Run(ctx context.Context, handler Handler) error {
	updates, err := g.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start long polling: %w", err)
	}
	g.l.WithField("workers", g.workers).Info("long polling started")

	wg := new(sync.WaitGroup)
	wg.Add(int(g.workers)) // nolint:gosec
	for i := range g.workers {
		go g.worker(ctx, wg, i+1, handler, updates)
	}
	wg.Wait()

	g.l.Info("long polling stopped")
	return nil
}

func (g *Gateway) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	handler Handler,
	updates <-chan telego.Update,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			event, ok := toEvent(update)
			if !ok {
				continue
			}
			correlationID := uuid.NewString()
			g.l.WithFields(logrus.Fields{
				"worker":         workerID,
				"update_id":      update.UpdateID,
				"correlation_id": correlationID,
			}).Debug("update received")
			handler.Handle(WithCorrelationID(ctx, correlationID), event)
		}
	}
}

func (g *Gateway) Send(ctx context.Context, reply Reply) error {
	if _, err := g.bot.SendMessage(ctx, buildMessage(reply)); err != nil {
		return fmt.Errorf("send message to %d: %w", reply.ChatID, err)
	}
	return nil
}

func (g *Gateway) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := g.bot.AnswerCallbackQuery(ctx, tu.CallbackQuery(callbackID)); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}

// botLogger направляет логи telego в logrus и вырезает из них токен бота.
type botLogger struct {
	l        *logrus.Entry
	replacer *strings.Replacer
}

func newBotLogger(l *logrus.Entry, token string) *botLogger {
	return &botLogger{
		l:        l.WithField("source", "telego"),
		replacer: strings.NewReplacer(token, "BOT_TOKEN"),
	}
}

func (b *botLogger) Debugf(format string, args ...any) {
	b.l.Debug(b.replacer.Replace(fmt.Sprintf(format, args...)))
}

func (b *botLogger) Errorf(format string, args ...any) {
	b.l.Error(b.replacer.Replace(fmt.Sprintf(format, args...)))
}

// toEvent нормализует обновление. ok=false для обновлений, которые бот не обрабатывает.
func toEvent(update telego.Update) (Event, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		e := Event{
			Kind:      EventText,
			UserID:    msg.From.ID,
			ChatID:    msg.Chat.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			Text:      msg.Text,
		}
		if command, args, payload, ok := ParseCommand(msg.Text); ok {
			e.Kind = EventCommand
			e.Command, e.Args, e.Payload = command, args, payload
		}
		return e, true
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		return Event{
			Kind:         EventCallback,
			UserID:       cb.From.ID,
			ChatID:       cb.From.ID,
			Username:     cb.From.Username,
			FirstName:    cb.From.FirstName,
			CallbackID:   cb.ID,
			CallbackData: cb.Data,
		}, true
	default:
		return Event{}, false
	}
}

func buildMessage(reply Reply) *telego.SendMessageParams {
	msg := tu.Message(tu.ID(reply.ChatID), reply.Text)
	if reply.Markdown {
		msg = msg.WithParseMode(telego.ModeMarkdown)
	}
	if len(reply.Keyboard) == 0 {
		return msg
	}

	rows := make([][]telego.InlineKeyboardButton, 0, len(reply.Keyboard))
	for _, row := range reply.Keyboard {
		buttons := make([]telego.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			button := tu.InlineKeyboardButton(b.Text)
			if b.WebAppURL != "" {
				button = button.WithWebApp(&telego.WebAppInfo{URL: b.WebAppURL})
			} else {
				button = button.WithCallbackData(b.CallbackData)
			}
			buttons = append(buttons, button)
		}
		rows = append(rows, tu.InlineKeyboardRow(buttons...))
	}
	return msg.WithReplyMarkup(tu.InlineKeyboard(rows...))
}

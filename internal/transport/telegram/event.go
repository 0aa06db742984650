package telegram

import (
	"context"
	"strings"
	"unicode"
)

type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventCallback
)

// Event входящее обновление, не зависящее от клиента мессенджера.
type Event struct {
	Kind      EventKind
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
	// Command имя команды без слеша и без @botname.
	Command string
	Args    []string
	// Payload текст после команды как есть, с переводами строк.
	Payload      string
	Text         string
	CallbackID   string
	CallbackData string
}

// DisplayName имя для публичных списков: username, если задан, иначе имя.
func (e Event) DisplayName() string {
	if e.Username != "" {
		return e.Username
	}
	return e.FirstName
}

// Button кнопка inline клавиатуры. Задается либо CallbackData, либо WebAppURL.
type Button struct {
	Text         string
	CallbackData string
	WebAppURL    string
}

type Reply struct {
	ChatID   int64
	Text     string
	Markdown bool
	Keyboard [][]Button
}

// ParseCommand разбирает текст сообщения. ok=false, если это не команда.
func ParseCommand(text string) (command string, args []string, payload string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, "", false
	}

	head, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, rest = text[:i], text[i:]
	}
	command = strings.TrimPrefix(head, "/")
	command, _, _ = strings.Cut(command, "@")
	if command == "" {
		return "", nil, "", false
	}

	payload = strings.TrimSpace(rest)
	return strings.ToLower(command), strings.Fields(payload), payload, true
}

type correlationKey struct{}

// WithCorrelationID помечает контекст обработки одного обновления.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

package telegram

import (
	"testing"

	"github.com/mymmrac/telego"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEvent(t *testing.T) {
	tests := []struct {
		name   string
		update telego.Update
		want   Event
		ok     bool
	}{
		{
			name: "command",
			update: telego.Update{Message: &telego.Message{
				From: &telego.User{ID: 42, Username: "budi", FirstName: "Budi"},
				Chat: telego.Chat{ID: 42},
				Text: "/dana@CastileMoney_Bot 081234567890",
			}},
			want: Event{
				Kind:      EventCommand,
				UserID:    42,
				ChatID:    42,
				Username:  "budi",
				FirstName: "Budi",
				Command:   "dana",
				Args:      []string{"081234567890"},
				Payload:   "081234567890",
				Text:      "/dana@CastileMoney_Bot 081234567890",
			},
			ok: true,
		},
		{
			name: "plain text",
			update: telego.Update{Message: &telego.Message{
				From: &telego.User{ID: 42, FirstName: "Budi"},
				Chat: telego.Chat{ID: 42},
				Text: "halo",
			}},
			want: Event{Kind: EventText, UserID: 42, ChatID: 42, FirstName: "Budi", Text: "halo"},
			ok:   true,
		},
		{
			name: "callback answers to sender chat",
			update: telego.Update{CallbackQuery: &telego.CallbackQuery{
				ID:   "cb",
				From: telego.User{ID: 7, FirstName: "Sari"},
				Data: CallbackCheckBalance,
			}},
			want: Event{
				Kind:         EventCallback,
				UserID:       7,
				ChatID:       7,
				FirstName:    "Sari",
				CallbackID:   "cb",
				CallbackData: CallbackCheckBalance,
			},
			ok: true,
		},
		{
			name:   "channel post without sender",
			update: telego.Update{Message: &telego.Message{Chat: telego.Chat{ID: -100}, Text: "/start"}},
		},
		{
			name:   "unsupported update",
			update: telego.Update{UpdateID: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toEvent(tt.update)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		msg := buildMessage(Reply{ChatID: 42, Text: "a*b"})
		assert.Equal(t, int64(42), msg.ChatID.ID)
		assert.Equal(t, "a*b", msg.Text)
		assert.Empty(t, msg.ParseMode)
		assert.Nil(t, msg.ReplyMarkup)
	})

	t.Run("markdown with keyboard", func(t *testing.T) {
		msg := buildMessage(Reply{
			ChatID:   42,
			Text:     "*menu*",
			Markdown: true,
			Keyboard: [][]Button{
				{{Text: "Iklan", WebAppURL: "https://ads.example.com"}},
				{{Text: "Saldo", CallbackData: CallbackCheckBalance}, {Text: "Info", CallbackData: CallbackBotInfo}},
			},
		})
		assert.Equal(t, telego.ModeMarkdown, msg.ParseMode)

		markup, ok := msg.ReplyMarkup.(*telego.InlineKeyboardMarkup)
		require.True(t, ok)
		require.Len(t, markup.InlineKeyboard, 2)

		web := markup.InlineKeyboard[0][0]
		require.NotNil(t, web.WebApp)
		assert.Equal(t, "https://ads.example.com", web.WebApp.URL)
		assert.Empty(t, web.CallbackData)

		require.Len(t, markup.InlineKeyboard[1], 2)
		assert.Equal(t, CallbackBotInfo, markup.InlineKeyboard[1][1].CallbackData)
	})
}

func TestBotLoggerHidesToken(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	bl := newBotLogger(l.WithField("component", "telegram"), "123:secret")
	bl.Debugf("API call to: %s", "https://api.telegram.org/bot123:secret/getUpdates")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "API call to: https://api.telegram.org/botBOT_TOKEN/getUpdates", hook.LastEntry().Message)
}

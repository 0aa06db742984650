// Package telegram связывает чат с леджером: разбирает команды и нажатия кнопок, вызывает операции и
// отправляет ответы.
package telegram

import (
	"context"
	"fmt"

	"github.com/fsdevblog/castile-money/internal/guard"
	"github.com/fsdevblog/castile-money/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const defaultBotUsername = "CastileMoney_Bot"

type RouterConfig struct {
	BotUsername   string
	AdURL         string
	MinWithdrawal int64
	ReferralBonus int64
}

type command struct {
	admin  bool
	handle func(ctx context.Context, e Event)
}

// Router переводит входящие события в вызовы леджера. Права администратора проверяются здесь, до вызова
// любой административной операции.
type Router struct {
	ledger      Ledger
	sender      Sender
	notifier    *Notifier
	broadcaster *Broadcaster
	cooldown    guard.CooldownTracker
	admins      Admins
	validate    *validator.Validate
	cfg         RouterConfig
	commands    map[string]command
	callbacks   map[string]func(ctx context.Context, e Event)
	l           *logrus.Entry
}

func NewRouter(
	ledger Ledger,
	sender Sender,
	cooldown guard.CooldownTracker,
	admins Admins,
	cfg RouterConfig,
	l *logrus.Logger,
) *Router {
	if cfg.BotUsername == "" {
		cfg.BotUsername = defaultBotUsername
	}
	if cfg.MinWithdrawal <= 0 {
		cfg.MinWithdrawal = service.DefaultMinWithdrawal
	}
	if cfg.ReferralBonus <= 0 {
		cfg.ReferralBonus = service.DefaultReferralBonus
	}

	r := &Router{
		ledger:      ledger,
		sender:      sender,
		notifier:    NewNotifier(sender, admins, l),
		broadcaster: NewBroadcaster(sender, l),
		cooldown:    cooldown,
		admins:      admins,
		validate:    validator.New(),
		cfg:         cfg,
		l: l.WithFields(logrus.Fields{
			"component": "telegram",
			"module":    "router",
		}),
	}

	r.commands = map[string]command{
		"start":       {handle: r.cmdStart},
		"myid":        {handle: r.cmdMyID},
		"referral":    {handle: r.cmdReferral},
		"balance":     {handle: r.cmdBalance},
		"dana":        {handle: r.cmdDana},
		"history":     {handle: r.cmdHistory},
		"help":        {handle: r.cmdHelp},
		"approve":     {admin: true, handle: r.cmdApprove},
		"reject":      {admin: true, handle: r.cmdReject},
		"add_balance": {admin: true, handle: r.cmdAddBalance},
		"stats":       {admin: true, handle: r.cmdStats},
		"pending":     {admin: true, handle: r.cmdPending},
		"broadcast":   {admin: true, handle: r.cmdBroadcast},
	}
	r.callbacks = map[string]func(ctx context.Context, e Event){
		CallbackCheckBalance: r.cbCheckBalance,
		CallbackPaymentProof: r.cbPaymentProof,
		CallbackReferral:     r.cbReferral,
		CallbackBotInfo:      r.cbBotInfo,
		CallbackWithdraw:     r.cbWithdraw,
		CallbackBackToMain:   r.cbBackToMain,
	}
	return r
}

// Notifier общий с HTTP API отправитель уведомлений.
func (r *Router) Notifier() *Notifier {
	return r.notifier
}

// SetBroadcastWorkers устанавливает кол-во воркеров рассылки.
func (r *Router) SetBroadcastWorkers(workers uint) *Router {
	r.broadcaster.SetWorkers(workers)
	return r
}

// Handle обрабатывает одно событие. Любое взаимодействие сначала регистрирует пользователя и обновляет время
// его активности.
func (r *Router) Handle(ctx context.Context, e Event) {
	l := r.logger(ctx).WithField("user_id", e.UserID)

	if _, err := r.ledger.GetOrCreateUser(ctx, e.UserID, e.DisplayName()); err != nil {
		l.WithError(err).Error("get or create user")
		r.reply(ctx, e.ChatID, textInternalError)
		return
	}

	switch e.Kind {
	case EventCommand:
		r.handleCommand(ctx, e)
	case EventCallback:
		r.handleCallback(ctx, e)
	case EventText:
		l.Debug("plain text ignored")
	}
}

func (r *Router) handleCommand(ctx context.Context, e Event) {
	cmd, ok := r.commands[e.Command]
	if !ok {
		r.reply(ctx, e.ChatID, textUnknownCommand)
		return
	}
	if cmd.admin && !r.admins.IsAdmin(e.UserID) {
		r.logger(ctx).WithFields(logrus.Fields{
			"user_id": e.UserID,
			"command": e.Command,
		}).Warn("admin command denied")
		r.reply(ctx, e.ChatID, textNoPermission)
		return
	}
	cmd.handle(ctx, e)
}

func (r *Router) handleCallback(ctx context.Context, e Event) {
	if err := r.sender.AnswerCallback(ctx, e.CallbackID); err != nil {
		r.logger(ctx).WithError(err).Debug("answer callback")
	}

	handle, ok := r.callbacks[e.CallbackData]
	if !ok {
		r.logger(ctx).WithField("data", e.CallbackData).Debug("unknown callback data")
		return
	}
	handle(ctx, e)
}

func (r *Router) reply(ctx context.Context, chatID int64, text string) {
	r.send(ctx, Reply{ChatID: chatID, Text: text})
}

func (r *Router) replyMarkdown(ctx context.Context, chatID int64, text string, keyboard [][]Button) {
	r.send(ctx, Reply{ChatID: chatID, Text: text, Markdown: true, Keyboard: keyboard})
}

func (r *Router) send(ctx context.Context, reply Reply) {
	if err := r.sender.Send(ctx, reply); err != nil {
		r.logger(ctx).WithField("chat_id", reply.ChatID).WithError(err).Warn("reply not delivered")
	}
}

func (r *Router) internalError(ctx context.Context, e Event, op string, err error) {
	r.logger(ctx).WithFields(logrus.Fields{
		"user_id": e.UserID,
		"op":      op,
	}).WithError(err).Error("ledger operation failed")
	r.reply(ctx, e.ChatID, textInternalError)
}

func (r *Router) logger(ctx context.Context) *logrus.Entry {
	if id := CorrelationID(ctx); id != "" {
		return r.l.WithField("correlation_id", id)
	}
	return r.l
}

func (r *Router) referralLink(code string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", r.cfg.BotUsername, code)
}

func (r *Router) mainMenuKeyboard() [][]Button {
	var rows [][]Button
	if r.cfg.AdURL != "" {
		rows = append(rows, []Button{{Text: "Mulai Menghasilkan Sekarang", WebAppURL: r.cfg.AdURL}})
	}
	return append(rows,
		[]Button{{Text: "Cek Saldo", CallbackData: CallbackCheckBalance}},
		[]Button{{Text: "Bukti Pembayaran", CallbackData: CallbackPaymentProof}},
		[]Button{{Text: "Referral", CallbackData: CallbackReferral}},
		[]Button{{Text: "Informasi Bot", CallbackData: CallbackBotInfo}},
	)
}

func (r *Router) balanceKeyboard() [][]Button {
	var rows [][]Button
	if r.cfg.AdURL != "" {
		rows = append(rows, []Button{{Text: "Tonton Iklan", WebAppURL: r.cfg.AdURL}})
	}
	return append(rows,
		[]Button{{Text: "Tarik Saldo", CallbackData: CallbackWithdraw}},
		[]Button{{Text: "Kembali", CallbackData: CallbackBackToMain}},
	)
}

func backKeyboard() [][]Button {
	return [][]Button{{{Text: "Kembali", CallbackData: CallbackBackToMain}}}
}

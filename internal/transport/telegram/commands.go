package telegram

import (
	"context"
	"errors"

	"github.com/fsdevblog/castile-money/internal/domain"
)

type danaArgs struct {
	Number string `validate:"required,number,min=10,max=13"`
}

// cmdStart регистрирует пользователя (уже сделано в Handle) и только потом применяет реферальный код,
// поэтому новый пользователь всегда существует к моменту закрепления за реферером.
func (r *Router) cmdStart(ctx context.Context, e Event) {
	if len(e.Args) > 0 {
		bonus, err := r.ledger.ApplyReferral(ctx, e.UserID, e.Args[0])
		switch {
		case err != nil:
			r.logger(ctx).WithField("user_id", e.UserID).WithError(err).Error("apply referral")
		case bonus != nil:
			r.notifier.ReferralBonus(ctx, bonus)
		}
	}
	r.replyMarkdown(ctx, e.ChatID, mainMenuText(r.cfg.MinWithdrawal), r.mainMenuKeyboard())
}

func (r *Router) cmdMyID(ctx context.Context, e Event) {
	r.reply(ctx, e.ChatID, myIDText(e, r.admins.IsAdmin(e.UserID)))
}

func (r *Router) cmdReferral(ctx context.Context, e Event) {
	code := domain.ReferralCodeFor(e.UserID)
	r.replyMarkdown(ctx, e.ChatID, referralText(code, r.referralLink(code), r.cfg.ReferralBonus), nil)
}

func (r *Router) cmdBalance(ctx context.Context, e Event) {
	user, err := r.ledger.GetUser(ctx, e.UserID)
	if err != nil {
		r.internalError(ctx, e, "get user", err)
		return
	}
	r.replyMarkdown(ctx, e.ChatID, balanceText(user.Balance, r.cfg.MinWithdrawal), r.balanceKeyboard())
}

// cmdDana создает заявку на вывод всего баланса. Окно ожидания проверяется после разбора аргументов, чтобы
// опечатка в номере не блокировала пользователя.
func (r *Router) cmdDana(ctx context.Context, e Event) {
	if len(e.Args) != 1 {
		r.replyMarkdown(ctx, e.ChatID, usageDana, nil)
		return
	}
	args := danaArgs{Number: e.Args[0]}
	if err := r.validate.Struct(args); err != nil {
		r.reply(ctx, e.ChatID, textInvalidDana)
		return
	}

	remaining, ok, cooldownErr := r.cooldown.Acquire(ctx, e.UserID)
	switch {
	case cooldownErr != nil:
		r.logger(ctx).WithError(cooldownErr).Warn("cooldown unavailable, skipping")
	case !ok:
		r.reply(ctx, e.ChatID, cooldownText(remaining))
		return
	}

	tx, err := r.ledger.InitiateWithdrawal(ctx, e.UserID, args.Number)
	if err != nil {
		var balanceErr *domain.InsufficientBalanceError
		switch {
		case errors.As(err, &balanceErr):
			r.reply(ctx, e.ChatID, insufficientText(balanceErr.Minimum))
		case errors.Is(err, domain.ErrInvalidDestination):
			r.reply(ctx, e.ChatID, textInvalidDana)
		default:
			r.internalError(ctx, e, "initiate withdrawal", err)
		}
		return
	}

	r.replyMarkdown(ctx, e.ChatID, withdrawalCreatedText(tx, args.Number), nil)
	r.notifier.WithdrawalRequested(ctx, tx, args.Number)
}

func (r *Router) cmdHistory(ctx context.Context, e Event) {
	txs, err := r.ledger.History(ctx, e.UserID, 0)
	if err != nil {
		r.internalError(ctx, e, "history", err)
		return
	}
	r.reply(ctx, e.ChatID, historyText(txs))
}

func (r *Router) cmdHelp(ctx context.Context, e Event) {
	r.reply(ctx, e.ChatID, helpText(r.admins.IsAdmin(e.UserID)))
}

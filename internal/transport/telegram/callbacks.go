package telegram

import (
	"context"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/fsdevblog/castile-money/internal/service"
)

func (r *Router) cbCheckBalance(ctx context.Context, e Event) {
	r.cmdBalance(ctx, e)
}

func (r *Router) cbPaymentProof(ctx context.Context, e Event) {
	proofs, err := r.ledger.ListRecentCompletedWithdrawals(ctx, service.DefaultProofLimit)
	if err != nil {
		r.internalError(ctx, e, "recent withdrawals", err)
		return
	}
	r.reply(ctx, e.ChatID, proofsText(proofs))
}

func (r *Router) cbReferral(ctx context.Context, e Event) {
	code := domain.ReferralCodeFor(e.UserID)
	r.replyMarkdown(ctx, e.ChatID, referralText(code, r.referralLink(code), r.cfg.ReferralBonus), backKeyboard())
}

func (r *Router) cbBotInfo(ctx context.Context, e Event) {
	r.reply(ctx, e.ChatID, botInfoText(r.cfg.BotUsername, r.cfg.MinWithdrawal))
}

// cbWithdraw только объясняет, как вывести средства. Сама заявка создается командой /dana.
func (r *Router) cbWithdraw(ctx context.Context, e Event) {
	user, err := r.ledger.GetUser(ctx, e.UserID)
	if err != nil {
		r.internalError(ctx, e, "get user", err)
		return
	}
	if user.Balance < r.cfg.MinWithdrawal {
		r.reply(ctx, e.ChatID, insufficientText(r.cfg.MinWithdrawal))
		return
	}
	r.replyMarkdown(ctx, e.ChatID, withdrawPromptText(user.Balance), nil)
}

func (r *Router) cbBackToMain(ctx context.Context, e Event) {
	r.replyMarkdown(ctx, e.ChatID, mainMenuText(r.cfg.MinWithdrawal), r.mainMenuKeyboard())
}

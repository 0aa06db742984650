package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/fsdevblog/castile-money/internal/domain"
)

type txIDArgs struct {
	TxID string `validate:"required,number,max=18"`
}

type addBalanceArgs struct {
	UserID string `validate:"required,number,max=18"`
	Amount string `validate:"required,numeric,max=18"`
}

type statsArgs struct {
	Days string `validate:"omitempty,number,max=4"`
}

func (r *Router) parseTxID(raw string) (int64, bool) {
	if err := r.validate.Struct(txIDArgs{TxID: raw}); err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func (r *Router) cmdApprove(ctx context.Context, e Event) {
	if len(e.Args) != 1 {
		r.replyMarkdown(ctx, e.ChatID, usageApprove, nil)
		return
	}
	txID, ok := r.parseTxID(e.Args[0])
	if !ok {
		r.reply(ctx, e.ChatID, textTxIDNotNumber)
		return
	}

	tx, err := r.ledger.ApproveWithdrawal(ctx, txID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) || errors.Is(err, domain.ErrAlreadyProcessed) {
			r.reply(ctx, e.ChatID, textTxNotFound)
			return
		}
		r.internalError(ctx, e, "approve withdrawal", err)
		return
	}

	r.logger(ctx).WithFields(map[string]any{"admin_id": e.UserID, "tx_id": tx.ID}).Info("withdrawal approved")
	r.reply(ctx, e.ChatID, approvedAdminText(tx.ID))
	r.notifier.WithdrawalApproved(ctx, tx)
}

func (r *Router) cmdReject(ctx context.Context, e Event) {
	if len(e.Args) < 2 {
		r.replyMarkdown(ctx, e.ChatID, usageReject, nil)
		return
	}
	txID, ok := r.parseTxID(e.Args[0])
	if !ok {
		r.reply(ctx, e.ChatID, textTxIDNotNumber)
		return
	}
	reason := strings.TrimSpace(strings.TrimPrefix(e.Payload, e.Args[0]))

	tx, err := r.ledger.RejectWithdrawal(ctx, txID, reason)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) || errors.Is(err, domain.ErrAlreadyProcessed) {
			r.reply(ctx, e.ChatID, textTxNotFound)
			return
		}
		r.internalError(ctx, e, "reject withdrawal", err)
		return
	}

	r.logger(ctx).WithFields(map[string]any{"admin_id": e.UserID, "tx_id": tx.ID}).Info("withdrawal rejected")
	r.reply(ctx, e.ChatID, rejectedAdminText(tx.ID))
	r.notifier.WithdrawalRejected(ctx, tx, reason)
}

func (r *Router) cmdAddBalance(ctx context.Context, e Event) {
	if len(e.Args) < 2 {
		r.replyMarkdown(ctx, e.ChatID, usageAddBalance, nil)
		return
	}
	args := addBalanceArgs{UserID: e.Args[0], Amount: e.Args[1]}
	if err := r.validate.Struct(args); err != nil {
		r.reply(ctx, e.ChatID, textAddArgsNotNumber)
		return
	}
	target, targetErr := strconv.ParseInt(args.UserID, 10, 64)
	amount, amountErr := strconv.ParseInt(args.Amount, 10, 64)
	if targetErr != nil || amountErr != nil {
		r.reply(ctx, e.ChatID, textAddArgsNotNumber)
		return
	}

	if _, err := r.ledger.RecordAdminAdjustment(ctx, target, amount, e.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			r.reply(ctx, e.ChatID, textAmountNotPositive)
		case errors.Is(err, domain.ErrUserNotFound):
			r.reply(ctx, e.ChatID, textUserNotFound)
		default:
			r.internalError(ctx, e, "admin adjustment", err)
		}
		return
	}

	r.reply(ctx, e.ChatID, creditedAdminText(amount, target))
	r.notifier.BalanceCredited(ctx, target, amount)
}

func (r *Router) cmdStats(ctx context.Context, e Event) {
	var args statsArgs
	if len(e.Args) > 0 {
		args.Days = e.Args[0]
	}
	if err := r.validate.Struct(args); err != nil {
		r.reply(ctx, e.ChatID, textStatsDaysInvalid)
		return
	}
	var days int
	if args.Days != "" {
		days, _ = strconv.Atoi(args.Days)
	}

	stats, err := r.ledger.ComputeStats(ctx, days)
	if err != nil {
		r.internalError(ctx, e, "compute stats", err)
		return
	}
	r.replyMarkdown(ctx, e.ChatID, statsText(stats), nil)
}

func (r *Router) cmdPending(ctx context.Context, e Event) {
	txs, err := r.ledger.PendingWithdrawals(ctx, 0)
	if err != nil {
		r.internalError(ctx, e, "pending withdrawals", err)
		return
	}
	r.reply(ctx, e.ChatID, pendingText(txs))
}

// cmdBroadcast рассылает текст всем пользователям. Текст отправляется без Markdown, как его ввел администратор.
func (r *Router) cmdBroadcast(ctx context.Context, e Event) {
	if e.Payload == "" {
		r.replyMarkdown(ctx, e.ChatID, usageBroadcast, nil)
		return
	}

	recipients, err := r.ledger.AudienceIDs(ctx)
	if err != nil {
		r.internalError(ctx, e, "audience ids", err)
		return
	}

	r.reply(ctx, e.ChatID, broadcastStartText(len(recipients)))
	result := r.broadcaster.Broadcast(ctx, recipients, broadcastText(e.Payload))
	r.reply(ctx, e.ChatID, broadcastDoneText(result))
}

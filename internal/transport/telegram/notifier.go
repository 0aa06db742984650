package telegram

import (
	"context"

	"github.com/fsdevblog/castile-money/internal/domain"
	"github.com/sirupsen/logrus"
)

// Notifier рассылает уведомления после коммита операции. Одна попытка на получателя: ошибка доставки
// только логируется и ничего не откатывает.
type Notifier struct {
	sender Sender
	admins Admins
	l      *logrus.Entry
}

func NewNotifier(sender Sender, admins Admins, l *logrus.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		admins: admins,
		l: l.WithFields(logrus.Fields{
			"component": "telegram",
			"module":    "notifier",
		}),
	}
}

// WithdrawalRequested сообщает всем администраторам о новой заявке.
func (n *Notifier) WithdrawalRequested(ctx context.Context, tx *domain.Transaction, destination string) {
	text := adminWithdrawalText(tx, destination)
	for _, adminID := range n.admins.IDs() {
		n.notify(ctx, Reply{ChatID: adminID, Text: text, Markdown: true})
	}
}

func (n *Notifier) WithdrawalApproved(ctx context.Context, tx *domain.Transaction) {
	n.notify(ctx, Reply{ChatID: tx.UserID, Text: approvedUserText(tx)})
}

// WithdrawalRejected отправляется без Markdown: причину вводит администратор.
func (n *Notifier) WithdrawalRejected(ctx context.Context, tx *domain.Transaction, reason string) {
	n.notify(ctx, Reply{ChatID: tx.UserID, Text: rejectedUserText(tx, reason)})
}

func (n *Notifier) BalanceCredited(ctx context.Context, userID, amount int64) {
	n.notify(ctx, Reply{ChatID: userID, Text: creditedUserText(amount), Markdown: true})
}

func (n *Notifier) ReferralBonus(ctx context.Context, tx *domain.Transaction) {
	n.notify(ctx, Reply{ChatID: tx.UserID, Text: referralBonusText(tx.Amount), Markdown: true})
}

func (n *Notifier) notify(ctx context.Context, reply Reply) {
	if err := n.sender.Send(ctx, reply); err != nil {
		n.l.WithFields(logrus.Fields{
			"chat_id":        reply.ChatID,
			"correlation_id": CorrelationID(ctx),
		}).WithError(err).Warn("notification not delivered")
	}
}

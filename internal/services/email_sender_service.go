package services

import (
	"context"
	"fmt"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

type EmailSender interface {
	SendOrderEmail(ctx context.Context, toEmail, subject, text string) error
}

// MailNotifier copies every order summary to the shop's mailbox.
type MailNotifier struct {
	Sender EmailSender
	To     string
}

func NewMailNotifier(sender EmailSender, to string) *MailNotifier {
	return &MailNotifier{Sender: sender, To: to}
}

func (n *MailNotifier) NotifyOrder(ctx context.Context, order model.Order, summary string) error {
	subject := fmt.Sprintf("New order %s (%s)", order.ID, order.PaymentMethod)
	if err := n.Sender.SendOrderEmail(ctx, n.To, subject, summary); err != nil {
		return fmt.Errorf("mail order %s: %w", order.ID, err)
	}
	return nil
}

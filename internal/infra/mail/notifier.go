package mail

import (
	"context"

	"app/internal/domain/model"
)

// 素のSMTP送信（SMTPMailerなど）
type Sender interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}

// Notifier はテンプレートを当てて各種通知メールを送る。
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) OrderConfirmation(ctx context.Context, to string, order model.Order, items []model.OrderItem) error {
	subject, body, err := OrderConfirmation(order, items)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, subject, body)
}

func (n *Notifier) PasswordResetCode(ctx context.Context, to string, code string) error {
	subject, body, err := PasswordResetCode(code)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, subject, body)
}

func (n *Notifier) GiftCardDelivery(ctx context.Context, card model.GiftCard) error {
	subject, body, err := GiftCardDelivery(card)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, card.RecipientEmail, subject, body)
}

func (n *Notifier) AppointmentConfirmation(ctx context.Context, appt model.Appointment) error {
	subject, body, err := AppointmentConfirmation(appt)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, appt.Email, subject, body)
}

func (n *Notifier) AppointmentRequested(ctx context.Context, to string, appt model.Appointment) error {
	subject, body, err := AppointmentRequestNotice(appt)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, subject, body)
}

func (n *Notifier) ReturnRequested(ctx context.Context, to string, orderNumber string, reason string) error {
	subject, body, err := ReturnRequestNotice(orderNumber, reason)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, to, subject, body)
}

package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"app/internal/domain/model"
)

// 各種通知メールの本文を組み立てる

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Thank you for your order!</h2>
  <p>Your order <strong>{{.Order.OrderNumber}}</strong> has been received.</p>
  <table style="width:100%;border-collapse:collapse">
    {{range .Items}}
    <tr>
      <td style="padding:8px;border-bottom:1px solid #eee">{{.ProductNameSnapshot}}{{if .Customization.Engraving}} (engraved: {{.Customization.Engraving}}){{end}}</td>
      <td style="padding:8px;border-bottom:1px solid #eee;text-align:right">x{{.Quantity}}</td>
      <td style="padding:8px;border-bottom:1px solid #eee;text-align:right">{{printf "%.2f" .UnitPriceSnapshot}}</td>
    </tr>
    {{end}}
  </table>
  <p style="text-align:right">
    Subtotal: {{printf "%.2f" .Order.Subtotal}}<br>
    Shipping: {{printf "%.2f" .Order.ShippingCost}}<br>
    Tax: {{printf "%.2f" .Order.Tax}}<br>
    <strong>Total: {{printf "%.2f" .Order.Total}} {{.Order.Currency}}</strong>
  </p>
  <p>We will notify you when your order ships.</p>
</div>`))

func OrderConfirmation(order model.Order, items []model.OrderItem) (subject string, body string, err error) {
	var buf bytes.Buffer
	data := struct {
		Order model.Order
		Items []model.OrderItem
	}{order, items}
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Order Confirmation - %s", order.OrderNumber), buf.String(), nil
}

var resetCodeTmpl = template.Must(template.New("reset").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Password Reset</h2>
  <p>Use the following code to reset your password. It expires in 15 minutes.</p>
  <p style="font-size:28px;letter-spacing:4px"><strong>{{.Code}}</strong></p>
  <p>If you did not request this, you can ignore this email.</p>
</div>`))

func PasswordResetCode(code string) (subject string, body string, err error) {
	var buf bytes.Buffer
	if err := resetCodeTmpl.Execute(&buf, struct{ Code string }{code}); err != nil {
		return "", "", err
	}
	return "Your Password Reset Code", buf.String(), nil
}

var giftCardTmpl = template.Must(template.New("giftcard").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>You've received a gift card!</h2>
  <p>{{.Card.PurchaserName}} sent you a gift card worth <strong>{{printf "%.2f" .Card.Amount}}</strong>.</p>
  {{if .Card.Message}}<blockquote style="border-left:3px solid #ccc;padding-left:12px">{{.Card.Message}}</blockquote>{{end}}
  <p>Your code: <strong style="font-size:20px">{{.Card.Code}}</strong></p>
  <p>Valid until {{.Card.ExpiresAt.Format "Jan 2, 2006"}}.</p>
</div>`))

func GiftCardDelivery(card model.GiftCard) (subject string, body string, err error) {
	var buf bytes.Buffer
	if err := giftCardTmpl.Execute(&buf, struct{ Card model.GiftCard }{card}); err != nil {
		return "", "", err
	}
	return "A gift card from " + card.PurchaserName, buf.String(), nil
}

var appointmentConfirmTmpl = template.Must(template.New("appointment").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Appointment Request Received</h2>
  <p>Dear {{.Appt.Name}},</p>
  <p>Thank you for your appointment request.{{if .Appt.PreferredDate}} Your preferred date is {{.Appt.PreferredDate.Format "Jan 2, 2006"}}.{{end}}</p>
  <p>We will contact you shortly to confirm the details.</p>
</div>`))

func AppointmentConfirmation(appt model.Appointment) (subject string, body string, err error) {
	var buf bytes.Buffer
	if err := appointmentConfirmTmpl.Execute(&buf, struct{ Appt model.Appointment }{appt}); err != nil {
		return "", "", err
	}
	return "Appointment Request Confirmation", buf.String(), nil
}

var appointmentNoticeTmpl = template.Must(template.New("appointment_notice").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <p><strong>New appointment request received:</strong></p>
  <p>
    Name: {{.Appt.Name}}<br>
    Email: {{.Appt.Email}}<br>
    {{if .Appt.Phone}}Phone: {{.Appt.Phone}}<br>{{end}}
    {{if .Appt.PreferredDate}}Preferred Date: {{.Appt.PreferredDate.Format "Jan 2, 2006"}}<br>{{end}}
    {{if .Appt.Message}}Message: {{.Appt.Message}}{{end}}
  </p>
</div>`))

// 管理者宛ての予約リクエスト通知
func AppointmentRequestNotice(appt model.Appointment) (subject string, body string, err error) {
	var buf bytes.Buffer
	if err := appointmentNoticeTmpl.Execute(&buf, struct{ Appt model.Appointment }{appt}); err != nil {
		return "", "", err
	}
	return "New Appointment Request", buf.String(), nil
}

var returnRequestTmpl = template.Must(template.New("return").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>Return Request</h2>
  <p>A return was requested for order <strong>{{.OrderNumber}}</strong>.</p>
  <p>Reason: {{.Reason}}</p>
</div>`))

// 管理者宛ての返品リクエスト通知
func ReturnRequestNotice(orderNumber string, reason string) (subject string, body string, err error) {
	var buf bytes.Buffer
	data := struct {
		OrderNumber string
		Reason      string
	}{orderNumber, reason}
	if err := returnRequestTmpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return "Return requested - " + orderNumber, buf.String(), nil
}

package email

import (
	"context"
	"fmt"
	"html"
	"time"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To      []string // Recipient email addresses
	From    string   // Sender address (e.g. "GymDesk <noreply@gymdesk.app>")
	Subject string
	HTML    string // HTML body
	ReplyTo string // Reply-to address
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// ReceiptRequest holds the details of an approved payment for the
// notification email sent to the gym owner.
type ReceiptRequest struct {
	StudentName string
	Amount      int
	PaidOn      time.Time
	MonthKey    string
}

// ComposeReceipt renders the payment receipt notification body.
// POST: Returns a subject line and an HTML body with all values escaped
func ComposeReceipt(req ReceiptRequest) (subject, body string) {
	subject = fmt.Sprintf("Payment received: %s", req.StudentName)
	body = fmt.Sprintf(
		`<h2>Payment approved</h2>
<p><strong>%s</strong> paid <strong>₹%d</strong> on %s.</p>
<p>Recorded against month %s.</p>`,
		html.EscapeString(req.StudentName),
		req.Amount,
		req.PaidOn.Format("2 Jan 2006"),
		html.EscapeString(req.MonthKey),
	)
	return subject, body
}

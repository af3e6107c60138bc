// Package links builds the external payment and messaging URLs the app
// hands to clients: UPI pay strings, QR image URLs, and WhatsApp links.
package links

import (
	"fmt"
	"net/url"
)

const qrEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// PayeeName is the payee display name embedded in UPI pay strings.
const PayeeName = "KGFGym"

// UPIPayString builds the upi://pay deep link for the given UPI ID and amount.
// PRE: upiID is non-empty, amount > 0
// POST: Returns a upi://pay URI parseable by UPI payment apps
func UPIPayString(upiID string, amount int) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&tn=Fee&cu=INR", upiID, PayeeName, amount)
}

// QRImageURL builds the QR image URL encoding the given payload.
// POST: Returns a 200x200 QR code image URL with the payload escaped
func QRImageURL(payload string) string {
	return qrEndpoint + "?size=200x200&data=" + url.QueryEscape(payload)
}

// DueReminder builds the WhatsApp link an admin uses to nudge a student
// about an outstanding payment.
// PRE: phone is the student's phone number in international format
// POST: Returns a wa.me link with the reminder message prefilled
func DueReminder(phone, name string, due int) string {
	msg := fmt.Sprintf("Hello %s, this is a reminder from KGF Gym. You have a due payment of Rs.%d. Please pay at your earliest convenience.", name, due)
	return waLink(phone, msg)
}

// PaymentConfirmation builds the WhatsApp link a student uses to tell the
// admin a payment was made.
// PRE: adminPhone is set in payment settings
// POST: Returns a wa.me link identifying the student and the amount paid
func PaymentConfirmation(adminPhone, studentName, accessCode string, amount int) string {
	msg := fmt.Sprintf("Hi, I (Student: %s, Code: %s) have paid Rs.%d. Here is the screenshot.", studentName, accessCode, amount)
	return waLink(adminPhone, msg)
}

func waLink(phone, msg string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(msg)
}

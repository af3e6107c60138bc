package links

import (
	"net/url"
	"strings"
	"testing"
)

// TestUPIPayString verifies the UPI deep link carries all required fields.
func TestUPIPayString(t *testing.T) {
	got := UPIPayString("gym@okbank", 1500)
	want := "upi://pay?pa=gym@okbank&pn=KGFGym&am=1500&tn=Fee&cu=INR"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestQRImageURL verifies the QR URL escapes the payload.
func TestQRImageURL(t *testing.T) {
	got := QRImageURL("upi://pay?pa=gym@okbank&am=500")
	if !strings.HasPrefix(got, "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if strings.Contains(got, "data=upi://") {
		t.Errorf("payload not escaped: %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("unparseable URL: %v", err)
	}
	if data := u.Query().Get("data"); data != "upi://pay?pa=gym@okbank&am=500" {
		t.Errorf("decoded payload mismatch: %q", data)
	}
}

// TestDueReminder verifies the reminder link targets the right phone and
// mentions the due amount.
func TestDueReminder(t *testing.T) {
	got := DueReminder("919876543210", "Rahul", 1200)
	if !strings.HasPrefix(got, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("unparseable URL: %v", err)
	}
	text := u.Query().Get("text")
	if !strings.Contains(text, "Rahul") || !strings.Contains(text, "Rs.1200") {
		t.Errorf("reminder text missing name or amount: %q", text)
	}
}

// TestPaymentConfirmation verifies the confirmation link identifies the student.
func TestPaymentConfirmation(t *testing.T) {
	got := PaymentConfirmation("919876543210", "Priya", "482913", 1500)
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("unparseable URL: %v", err)
	}
	text := u.Query().Get("text")
	for _, want := range []string{"Priya", "482913", "Rs.1500"} {
		if !strings.Contains(text, want) {
			t.Errorf("confirmation text missing %q: %q", want, text)
		}
	}
}

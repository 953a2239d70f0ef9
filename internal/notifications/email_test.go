package notifications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cw-prime/Payton-Place/internal/contact"
)

func TestNewMailerRequiresHostAndRecipient(t *testing.T) {
	if m := NewMailer("", 587, "", "", "from@x.com", "to@x.com", "", time.UTC); m != nil {
		t.Fatalf("expected nil mailer without host")
	}
	if m := NewMailer("smtp.example.com", 587, "", "", "from@x.com", "", "", time.UTC); m != nil {
		t.Fatalf("expected nil mailer without recipient")
	}
	m := NewMailer("smtp.example.com", 587, "", "", "", "to@x.com", "https://example.com/admin/", time.UTC)
	if m == nil {
		t.Fatalf("expected configured mailer")
	}
	if m.from != "to@x.com" {
		t.Fatalf("expected from to default to recipient, got %q", m.from)
	}
	if m.adminURL != "https://example.com/admin" {
		t.Fatalf("expected trimmed admin url, got %q", m.adminURL)
	}
}

func TestNilMailerSkipsDelivery(t *testing.T) {
	var m *Mailer
	if m.Enabled() {
		t.Fatalf("nil mailer must report disabled")
	}
	if err := m.ContactInquiryReceived(context.Background(), contact.Inquiry{}); err != nil {
		t.Fatalf("nil mailer must be a no-op, got %v", err)
	}
}

func TestContactInquiryHTMLEscapesAndFormats(t *testing.T) {
	m := NewMailer("smtp.example.com", 587, "", "", "from@x.com", "to@x.com", "https://example.com/admin", time.UTC)
	html, err := buildContactInquiryHTML(contactInquiryData{
		Name:      "Jane <script>",
		Email:     "jane@example.com",
		Message:   nl2br("line one\nline <b>two</b>"),
		Submitted: m.submittedAt(time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)),
		AdminURL:  m.adminURL,
	})
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("name was not escaped: %s", html)
	}
	if !strings.Contains(html, "line one<br>line &lt;b&gt;two&lt;/b&gt;") {
		t.Fatalf("message line breaks not preserved: %s", html)
	}
	if strings.Contains(html, "Project Type") {
		t.Fatalf("empty project type must be omitted: %s", html)
	}
	if !strings.Contains(html, "https://example.com/admin/inquiries") {
		t.Fatalf("missing admin link: %s", html)
	}
	if !strings.Contains(html, "Mar 1, 2024 at 3:30 PM UTC") {
		t.Fatalf("unexpected submitted timestamp: %s", html)
	}
}

func TestContactInquiryIncludesProjectType(t *testing.T) {
	html, err := buildContactInquiryHTML(contactInquiryData{
		Name:        "Sam",
		Email:       "sam@example.com",
		ProjectType: "residential",
		Message:     nl2br("hello"),
		AdminURL:    "https://example.com/admin",
	})
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	if !strings.Contains(html, "Project Type:</strong> residential") {
		t.Fatalf("project type missing: %s", html)
	}
}

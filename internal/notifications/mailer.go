package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers admin notification emails over SMTP. A nil Mailer is
// valid and silently skips delivery, so callers can wire it without
// checking whether email is configured.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
	adminURL string
	location *time.Location
}

func NewMailer(host string, port int, username, password, from, to, adminURL string, location *time.Location) *Mailer {
	if strings.TrimSpace(host) == "" || strings.TrimSpace(to) == "" {
		return nil
	}
	if strings.TrimSpace(from) == "" {
		from = to
	}
	if location == nil {
		location = time.UTC
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		adminURL: strings.TrimRight(adminURL, "/"),
		location: location,
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil
}

func (m *Mailer) sendHTML(ctx context.Context, subject, htmlBody string) error {
	if m == nil {
		return nil
	}
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("missing subject")
	}
	if strings.TrimSpace(htmlBody) == "" {
		return fmt.Errorf("missing html body")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().In(m.location).Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := net.JoinHostPort(m.host, fmt.Sprintf("%d", m.port))

	var conn net.Conn
	var err error
	dialer := &net.Dialer{}
	if m.port == 465 {
		// Implicit TLS; everything else negotiates STARTTLS below.
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: m.host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if m.port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(m.to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg.String())); err != nil {
		w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}
	return client.Quit()
}

func (m *Mailer) submittedAt(t time.Time) string {
	return t.In(m.location).Format("Jan 2, 2006 at 3:04 PM MST")
}

// nl2br escapes user text and preserves its line breaks for the HTML body.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

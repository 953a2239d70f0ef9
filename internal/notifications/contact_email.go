package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/cw-prime/Payton-Place/internal/contact"
)

const contactInquiryTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New Contact Inquiry Received</h2>
  <p>A new contact inquiry has been submitted through the website.</p>

  <h3>Contact Information:</h3>
  <ul>
    <li><strong>Name:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></li>
    {{if .ProjectType}}<li><strong>Project Type:</strong> {{.ProjectType}}</li>{{end}}
  </ul>

  <h3>Message:</h3>
  <p>{{.Message}}</p>

  <hr>
  <p><strong>Submitted:</strong> {{.Submitted}}</p>
  <p><a href="{{.AdminURL}}/inquiries">View in Admin Panel</a></p>
</body>
</html>`

var contactInquiryTmpl = template.Must(template.New("contact_inquiry").Parse(contactInquiryTemplate))

type contactInquiryData struct {
	Name        string
	Email       string
	ProjectType string
	Message     template.HTML
	Submitted   string
	AdminURL    string
}

func buildContactInquiryHTML(data contactInquiryData) (string, error) {
	var buf bytes.Buffer
	if err := contactInquiryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContactInquiryReceived emails the notification address about a new
// contact inquiry.
func (m *Mailer) ContactInquiryReceived(ctx context.Context, inquiry contact.Inquiry) error {
	if m == nil {
		return nil
	}
	subject := fmt.Sprintf("New Contact Inquiry - %s", inquiry.Name)
	if inquiry.ProjectType != "" {
		subject = fmt.Sprintf("New Contact Inquiry - %s (%s)", inquiry.Name, inquiry.ProjectType)
	}
	htmlBody, err := buildContactInquiryHTML(contactInquiryData{
		Name:        inquiry.Name,
		Email:       inquiry.Email,
		ProjectType: inquiry.ProjectType,
		Message:     nl2br(inquiry.Message),
		Submitted:   m.submittedAt(inquiry.CreatedAt),
		AdminURL:    m.adminURL,
	})
	if err != nil {
		return err
	}
	return m.sendHTML(ctx, subject, htmlBody)
}

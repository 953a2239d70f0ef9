package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/cw-prime/Payton-Place/internal/quotes"
)

const quoteRequestTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New Quote Request Received</h2>
  <p>A new quote request has been submitted through the website.</p>

  <h3>Contact Information:</h3>
  <ul>
    <li><strong>Name:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></li>
    <li><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></li>
  </ul>

  <h3>Project Details:</h3>
  <ul>
    <li><strong>Project Type:</strong> {{.ProjectType}}</li>
    <li><strong>Budget Range:</strong> {{.BudgetRange}}</li>
    <li><strong>Timeline:</strong> {{.Timeline}}</li>
  </ul>

  <h3>Description:</h3>
  <p>{{.Description}}</p>

  <hr>
  <p><strong>Submitted:</strong> {{.Submitted}}</p>
  <p><a href="{{.AdminURL}}/quotes">View in Admin Panel</a></p>
</body>
</html>`

var quoteRequestTmpl = template.Must(template.New("quote_request").Parse(quoteRequestTemplate))

type quoteRequestData struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	BudgetRange string
	Timeline    string
	Description template.HTML
	Submitted   string
	AdminURL    string
}

func buildQuoteRequestHTML(data quoteRequestData) (string, error) {
	var buf bytes.Buffer
	if err := quoteRequestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// QuoteRequestReceived emails the notification address about a new
// quote request.
func (m *Mailer) QuoteRequestReceived(ctx context.Context, quote quotes.QuoteRequest) error {
	if m == nil {
		return nil
	}
	subject := fmt.Sprintf("New Quote Request - %s", quote.Name)
	htmlBody, err := buildQuoteRequestHTML(quoteRequestData{
		Name:        quote.Name,
		Email:       quote.Email,
		Phone:       quote.Phone,
		ProjectType: quote.ProjectType,
		BudgetRange: quote.BudgetRange,
		Timeline:    quote.Timeline,
		Description: nl2br(quote.Description),
		Submitted:   m.submittedAt(quote.CreatedAt),
		AdminURL:    m.adminURL,
	})
	if err != nil {
		return err
	}
	return m.sendHTML(ctx, subject, htmlBody)
}

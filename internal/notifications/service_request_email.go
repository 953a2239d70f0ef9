package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/cw-prime/Payton-Place/internal/servicerequests"
)

const serviceRequestTemplate = `<!DOCTYPE html>
<html>
<body>
  <h2>New Service Request Received</h2>
  <p>A new service request has been submitted through the website.</p>

  <h3>Contact Information:</h3>
  <ul>
    <li><strong>Name:</strong> {{.Name}}</li>
    <li><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></li>
    <li><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></li>
    <li><strong>Preferred Contact:</strong> {{.PreferredContact}}</li>
  </ul>

  <h3>Service Details:</h3>
  <ul>
    <li><strong>Service:</strong> {{.ServiceName}}</li>
    <li><strong>Category:</strong> {{.ServiceCategory}}</li>
  </ul>

  <h3>Message:</h3>
  <p>{{.Message}}</p>

  <hr>
  <p><strong>Submitted:</strong> {{.Submitted}}</p>
  <p><a href="{{.AdminURL}}/service-requests">View in Admin Panel</a></p>
</body>
</html>`

var serviceRequestTmpl = template.Must(template.New("service_request").Parse(serviceRequestTemplate))

type serviceRequestData struct {
	Name             string
	Email            string
	Phone            string
	PreferredContact string
	ServiceName      string
	ServiceCategory  string
	Message          template.HTML
	Submitted        string
	AdminURL         string
}

func buildServiceRequestHTML(data serviceRequestData) (string, error) {
	var buf bytes.Buffer
	if err := serviceRequestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ServiceRequestReceived emails the notification address about a new
// service request.
func (m *Mailer) ServiceRequestReceived(ctx context.Context, request servicerequests.ServiceRequest) error {
	if m == nil {
		return nil
	}
	serviceName := "Unknown Service"
	serviceCategory := "unknown"
	if request.Service != nil {
		serviceName = request.Service.Name
		serviceCategory = request.Service.Category
	}
	subject := fmt.Sprintf("New Service Request - %s", request.Name)
	htmlBody, err := buildServiceRequestHTML(serviceRequestData{
		Name:             request.Name,
		Email:            request.Email,
		Phone:            request.Phone,
		PreferredContact: request.PreferredContactMethod,
		ServiceName:      serviceName,
		ServiceCategory:  serviceCategory,
		Message:          nl2br(request.Message),
		Submitted:        m.submittedAt(request.CreatedAt),
		AdminURL:         m.adminURL,
	})
	if err != nil {
		return err
	}
	return m.sendHTML(ctx, subject, htmlBody)
}

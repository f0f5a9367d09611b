package notifications

import (
	"bytes"
	"html/template"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/exceptions"
)

type invoiceTemplateData struct {
	Order    *models.Order
	Booking  *models.Booking
	Currency string
}

type confirmationTemplateData struct {
	Booking  *models.Booking
	Location string
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #444; padding-bottom: 12px; }
  .company { font-size: 20px; font-weight: bold; }
  .muted { color: #777; font-size: 12px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 13px; }
  th { background: #f4f4f4; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { border: none; }
  .due { font-weight: bold; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <div class="company">{{.Order.Company.DisplayName}}</div>
      <div class="muted">{{.Order.Company.Email}} | {{.Order.Company.Phone}}</div>
      <div class="muted">{{.Order.Company.Website}}</div>
    </div>
    <div>
      <div>Invoice #{{.Order.InvoiceID}}</div>
      <div class="muted">{{.Order.CreatedAt.Format "2006-01-02"}}</div>
    </div>
  </div>

  <p>Billed to: <strong>{{.Order.User.DisplayName}}</strong><br>
  {{.Order.User.Email}} | {{.Order.User.Phone}}</p>

  <table>
    <tr><th>Item</th><th>Price</th><th>Discount</th><th>Total</th></tr>
    {{range .Order.Items}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{$.Currency}}{{printf "%.2f" .SellingPrice}}</td>
      <td>{{$.Currency}}{{printf "%.2f" .Discount}}</td>
      <td>{{$.Currency}}{{printf "%.2f" .ItemTotal}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Total</td><td>{{.Currency}}{{printf "%.2f" .Order.TotalAmount}}</td></tr>
    <tr><td>Paid</td><td>{{.Currency}}{{printf "%.2f" .Order.TotalPaid}}</td></tr>
    <tr class="due"><td>Due</td><td>{{.Currency}}{{printf "%.2f" .Order.DueAmount}}</td></tr>
  </table>

  <p class="muted">Appointment: {{.Booking.Slot}} with {{.Booking.Doctor.DisplayName}}</p>
</body>
</html>`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
  .card { border: 1px solid #ddd; border-radius: 6px; padding: 24px; }
  .title { font-size: 18px; font-weight: bold; margin-bottom: 16px; }
  .row { margin: 6px 0; }
  .label { color: #777; display: inline-block; width: 130px; }
</style>
</head>
<body>
  <div class="card">
    <div class="title">Appointment Confirmation</div>
    <div class="row"><span class="label">Booking ID</span>{{.Booking.BookingID}}</div>
    <div class="row"><span class="label">Patient</span>{{.Booking.Patient.DisplayName}}</div>
    <div class="row"><span class="label">Doctor</span>{{.Booking.Doctor.DisplayName}}</div>
    <div class="row"><span class="label">Date</span>{{.Booking.AppointmentDate}}</div>
    <div class="row"><span class="label">Slot</span>{{.Booking.Slot}}</div>
    <div class="row"><span class="label">Location</span>{{.Location}}</div>
    <div class="row"><span class="label">Status</span>{{.Booking.Status}}</div>
  </div>
</body>
</html>`))

func renderInvoiceHTML(data invoiceTemplateData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", exceptions.ErrTemplateExecution(err)
	}
	return buf.String(), nil
}

func renderConfirmationHTML(data confirmationTemplateData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", exceptions.ErrTemplateExecution(err)
	}
	return buf.String(), nil
}

package email

import (
	"bytes"
	"fmt"
	"html/template"
	"payroll-backend/models"
	"time"
)

const (
	systemName = "Payroll Management System"

	UpdateTypeExpenseApproval  = "Expense Approval"
	UpdateTypeExpenseRejection = "Expense Rejection"
	UpdateTypeSalarySlipUpdate = "Salary Slip Update"
)

const cardTpl = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">{{.Header}}</h2>
  <p>{{.Intro}}</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
    {{range .Rows}}<p><strong>{{.Label}}:</strong> {{.Value}}</p>
    {{end}}
  </div>
</div>`

var card = template.Must(template.New("card").Parse(cardTpl))

type row struct {
	Label string
	Value string
}

type cardData struct {
	Header string
	Intro  string
	Rows   []row
}

// now подменяется в тестах
var now = time.Now

func formatTime(t time.Time) string {
	return t.Format("02.01.2006 15:04:05")
}

func build(subject string, data cardData) Message {
	text := new(bytes.Buffer)
	fmt.Fprintf(text, "%s\n\n", data.Intro)
	for _, r := range data.Rows {
		fmt.Fprintf(text, "%s: %s\n", r.Label, r.Value)
	}
	html := new(bytes.Buffer)
	if err := card.Execute(html, data); err != nil {
		// без html письмо все равно уходит
		html.Reset()
	}
	return Message{
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}
}

func roleTitle(role models.UserRole) string {
	if role.IsAdmin() {
		return "Admin"
	}
	return "User"
}

func UpdateNotification(updateType, actorName, actorEmail, details string) Message {
	return build("📝 Update Notification - "+systemName, cardData{
		Header: "📝 Update Notification",
		Intro:  "An update has been made in the " + systemName + ".",
		Rows: []row{
			{Label: "Update Type", Value: updateType},
			{Label: "User", Value: fmt.Sprintf("%s (%s)", actorName, actorEmail)},
			{Label: "Details", Value: details},
			{Label: "Time", Value: formatTime(now())},
		},
	})
}

func LoginNotification(name, email string, role models.UserRole) Message {
	who := roleTitle(role)
	return build(fmt.Sprintf("🔐 %s Login - %s", who, systemName), cardData{
		Header: fmt.Sprintf("🔐 %s Login Notification", who),
		Intro:  fmt.Sprintf("A %s has logged into the %s.", who, systemName),
		Rows: []row{
			{Label: "Name", Value: name},
			{Label: "Email", Value: email},
			{Label: "Role", Value: string(role)},
			{Label: "Time", Value: formatTime(now())},
		},
	})
}

func RegistrationNotification(name, email string, role models.UserRole) Message {
	return build("👤 New User Registration - "+systemName, cardData{
		Header: "👤 New User Registration",
		Intro:  "A new user has registered in the " + systemName + ".",
		Rows: []row{
			{Label: "Name", Value: name},
			{Label: "Email", Value: email},
			{Label: "Role", Value: string(role)},
			{Label: "Registration Time", Value: formatTime(now())},
		},
	})
}

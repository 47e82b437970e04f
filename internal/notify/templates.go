package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// AppointmentEmail son los datos que necesitan los dos templates de cita.
type AppointmentEmail struct {
	To        string
	OwnerName string
	DogName   string
	StartTime time.Time
	EndTime   time.Time
	Location  string
	Purpose   string
}

const timeLayout = "Monday, January 2 2006 at 3:04 PM"

type emailView struct {
	OwnerName string
	DogName   string
	Start     string
	End       string
	Location  string
	Purpose   string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
  <body>
    <p>Hi {{.OwnerName}},</p>
    <p>Your training session for <strong>{{.DogName}}</strong> is booked.</p>
    <ul>
      <li><strong>Start:</strong> {{.Start}}</li>
      <li><strong>End:</strong> {{.End}}</li>
      <li><strong>Location:</strong> {{.Location}}</li>
      <li><strong>Purpose:</strong> {{.Purpose}}</li>
    </ul>
    <p>See you there!<br>Bucks Dog Training</p>
  </body>
</html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
  <body>
    <p>Hi {{.OwnerName}},</p>
    <p>Just a reminder: <strong>{{.DogName}}</strong> has a training session today.</p>
    <ul>
      <li><strong>Start:</strong> {{.Start}}</li>
      <li><strong>End:</strong> {{.End}}</li>
      <li><strong>Location:</strong> {{.Location}}</li>
      <li><strong>Purpose:</strong> {{.Purpose}}</li>
    </ul>
    <p>See you soon!<br>Bucks Dog Training</p>
  </body>
</html>`))

func (d AppointmentEmail) view() emailView {
	return emailView{
		OwnerName: strings.TrimSpace(d.OwnerName),
		DogName:   strings.TrimSpace(d.DogName),
		Start:     d.StartTime.Format(timeLayout),
		End:       d.EndTime.Format(timeLayout),
		Location:  strings.TrimSpace(d.Location),
		Purpose:   strings.TrimSpace(d.Purpose),
	}
}

// ConfirmationMessage renderiza el mail de confirmación de cita creada.
func ConfirmationMessage(d AppointmentEmail) (Message, error) {
	var b strings.Builder
	if err := confirmationTmpl.Execute(&b, d.view()); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}
	return Message{
		To:       d.To,
		Subject:  fmt.Sprintf("Appointment confirmed for %s", strings.TrimSpace(d.DogName)),
		BodyHTML: b.String(),
		BodyText: fmt.Sprintf("Your training session for %s is booked: %s at %s.",
			strings.TrimSpace(d.DogName), d.StartTime.Format(timeLayout), strings.TrimSpace(d.Location)),
	}, nil
}

// ReminderMessage renderiza el recordatorio same-day.
func ReminderMessage(d AppointmentEmail) (Message, error) {
	var b strings.Builder
	if err := reminderTmpl.Execute(&b, d.view()); err != nil {
		return Message{}, fmt.Errorf("render reminder: %w", err)
	}
	return Message{
		To:       d.To,
		Subject:  fmt.Sprintf("Reminder: %s has training today", strings.TrimSpace(d.DogName)),
		BodyHTML: b.String(),
		BodyText: fmt.Sprintf("Reminder: %s has a training session today at %s (%s).",
			strings.TrimSpace(d.DogName), d.StartTime.Format("3:04 PM"), strings.TrimSpace(d.Location)),
	}, nil
}

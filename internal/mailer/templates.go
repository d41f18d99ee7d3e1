package mailer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/aircooling/backoffice/internal/timezone"
)

// Raw HTML in the markdown is escaped (WithUnsafe is not set).
var md = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type BookingConfirmation struct {
	ClientName      string
	AppointmentDate string
	AppointmentSlot string
	ServiceType     string
	Address         string
	TrackingID      string
	Locale          string
}

var bookingSubjects = map[string]string{
	"fr": "Confirmation de votre rendez-vous : %s",
	"nl": "Bevestiging van uw afspraak: %s",
}

var bookingBodies = map[string]*template.Template{
	"fr": template.Must(template.New("fr").Parse(`Bonjour {{.ClientName}},

Nous confirmons votre rendez-vous **{{.ServiceType}}**.

- Date : {{.Date}}
- Créneau : {{.AppointmentSlot}}
{{- if .Address}}
- Adresse : {{.Address}}
{{- end}}
{{- if .TrackingID}}
- Référence : {{.TrackingID}}
{{- end}}

Un technicien vous contactera la veille de l'intervention.

L'équipe Aircooling
`)),
	"nl": template.Must(template.New("nl").Parse(`Beste {{.ClientName}},

Wij bevestigen uw afspraak **{{.ServiceType}}**.

- Datum: {{.Date}}
- Tijdslot: {{.AppointmentSlot}}
{{- if .Address}}
- Adres: {{.Address}}
{{- end}}
{{- if .TrackingID}}
- Referentie: {{.TrackingID}}
{{- end}}

Een technicus neemt de dag voor de interventie contact met u op.

Het Aircooling-team
`)),
}

// Rendered is a subject with its markdown source and HTML body.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

func RenderBookingConfirmation(b BookingConfirmation) (*Rendered, error) {
	locale := b.Locale
	if _, ok := bookingBodies[locale]; !ok {
		locale = "fr"
	}

	data := struct {
		ClientName      string
		ServiceType     string
		Date            string
		AppointmentSlot string
		Address         string
		TrackingID      string
	}{
		ClientName:      escapeMarkdown(b.ClientName),
		ServiceType:     escapeMarkdown(b.ServiceType),
		Date:            escapeMarkdown(formatDate(b.AppointmentDate, locale)),
		AppointmentSlot: escapeMarkdown(b.AppointmentSlot),
		Address:         escapeMarkdown(b.Address),
		TrackingID:      escapeMarkdown(b.TrackingID),
	}

	var text bytes.Buffer
	if err := bookingBodies[locale].Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render booking email: %w", err)
	}

	var html bytes.Buffer
	if err := md.Convert(text.Bytes(), &html); err != nil {
		return nil, fmt.Errorf("convert booking email: %w", err)
	}

	return &Rendered{
		Subject: fmt.Sprintf(bookingSubjects[locale], singleLine(b.ServiceType)),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

var (
	frDays   = []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	frMonths = []string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
	nlDays   = []string{"zondag", "maandag", "dinsdag", "woensdag", "donderdag", "vrijdag", "zaterdag"}
	nlMonths = []string{"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"}
)

// formatDate spells out a YYYY-MM-DD date; anything else is kept as given.
func formatDate(s, locale string) string {
	d, err := timezone.ParseDate(s)
	if err != nil {
		return s
	}
	days, months := frDays, frMonths
	if locale == "nl" {
		days, months = nlDays, nlMonths
	}
	return fmt.Sprintf("%s %d %s %d", days[d.Weekday()], d.Day(), months[d.Month()-1], d.Year())
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`, "!", `\!`,
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(singleLine(s))
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

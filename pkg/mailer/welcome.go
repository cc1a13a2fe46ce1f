package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

// WelcomeData feeds the welcome templates.
type WelcomeData struct {
	Name    string
	Email   string
	AppName string
}

const welcomeSubject = "Welcome to {{ .AppName }}"

const welcomeText = `Hi {{ .Name }},

Your account on {{ .AppName }} is ready. Sign in with the phone number you registered.

If you did not create this account, please contact support.
`

const welcomeHTML = `<!doctype html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2933;">
    <h2>Welcome, {{ .Name }}!</h2>
    <p>Your account on <strong>{{ .AppName }}</strong> is ready.</p>
    <p>Sign in with the phone number you registered.</p>
    <p style="color: #7b8794; font-size: 12px;">This message was sent to {{ .Email }}.</p>
  </body>
</html>
`

var (
	welcomeSubjectTpl = texttpl.Must(texttpl.New("welcome_subject").Parse(welcomeSubject))
	welcomeTextTpl    = texttpl.Must(texttpl.New("welcome_text").Parse(welcomeText))
	welcomeHTMLTpl    = htmpl.Must(htmpl.New("welcome_html").Parse(welcomeHTML))
)

// RenderWelcome renders the welcome mail for a freshly registered user.
func RenderWelcome(d WelcomeData) (Message, error) {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = "there"
	}
	if d.AppName == "" {
		d.AppName = "our service"
	}

	var subj, text, html bytes.Buffer
	if err := welcomeSubjectTpl.Execute(&subj, d); err != nil {
		return Message{}, fmt.Errorf("render welcome subject: %w", err)
	}
	if err := welcomeTextTpl.Execute(&text, d); err != nil {
		return Message{}, fmt.Errorf("render welcome text: %w", err)
	}
	if err := welcomeHTMLTpl.Execute(&html, d); err != nil {
		return Message{}, fmt.Errorf("render welcome html: %w", err)
	}
	return Message{To: d.Email, Subject: subj.String(), Text: text.String(), HTML: html.String()}, nil
}

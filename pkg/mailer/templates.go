package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome to Ripple, {{.Name}}!</h2>
    <p>Your account is ready. Log in, set up your profile and start
    following people to build your feed.</p>
    <p style="color: #888; font-size: 12px;">Sent {{.Time}}</p>
  </body>
</html>`))

// Render produces the subject, plain-text and HTML bodies for a job.
func Render(job EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTmpl.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		name, _ := job.Data["Name"].(string)
		subject = "Welcome to Ripple"
		text = fmt.Sprintf("Welcome to Ripple, %s! Your account is ready.", name)
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}

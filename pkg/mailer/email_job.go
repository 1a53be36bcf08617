package mailer

// Template names a renderable email template.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

// EmailJob is the message enqueued for the email worker.
type EmailJob struct {
	To       string         `json:"to"`
	Template Template       `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

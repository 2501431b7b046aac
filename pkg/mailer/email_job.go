package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Recipients takes precedence over To and is delivered as one batched send.
// Template names one of the notification templates; Data carries its fields.
// Raw Subject/Text/HTML may be set instead of a template.
type EmailJob struct {
	To         string         `json:"to,omitempty"`
	Recipients []string       `json:"recipients,omitempty"`
	Subject    string         `json:"subject,omitempty"`
	Text       string         `json:"text,omitempty"`
	HTML       string         `json:"html,omitempty"`
	Template   string         `json:"template,omitempty"` // e.g. "daily_question", "points_awarded", "proposal_created"
	Data       map[string]any `json:"data,omitempty"`
}

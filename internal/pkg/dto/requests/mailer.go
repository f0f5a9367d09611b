package requests

type EmailAttachment struct {
	// Content is the base64-encoded file body.
	Content     string `json:"content"`
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Disposition string `json:"disposition"`
}

type EmailPayload struct {
	To          string            `json:"to"`
	From        string            `json:"from"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html"`
	Attachments []EmailAttachment `json:"attachments,omitempty"`
}

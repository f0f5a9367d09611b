package requests

type WhatsAppParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type WhatsAppMessage struct {
	Phone         string              `json:"phone"`
	TemplateName  string              `json:"template_name"`
	BroadcastName string              `json:"broadcast_name"`
	Parameters    []WhatsAppParameter `json:"parameters"`
}

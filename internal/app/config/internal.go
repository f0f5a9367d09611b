package config

type InternalConfig struct {
	App      App
	Renderer Renderer
	Company  Company
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MailerEmailSender          string
	RabbitMQMailerQueue        string
	RabbitMQWhatsAppQueue      string
	WhatsAppBroadcastName      string
	MaxRequests                int
	ShutdownTimeout            int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	SlotLockTTLInSeconds       int
}

type Renderer struct {
	BaseUrl          string
	TimeoutInSeconds int
}

// Company is the clinic operator identity stamped on invoices.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
	Logo    string
}

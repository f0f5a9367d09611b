package config

import (
	"psymate-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "psymate"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "smtp_host"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "psymate-documents"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
			PublicURL:  utils.GetEnvString("MINIO_PUBLIC_URL", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			MailerEmailSender:          utils.GetEnvString("APP_MAILER_EMAIL_SENDER", ""),
			RabbitMQMailerQueue:        utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer_queue"),
			RabbitMQWhatsAppQueue:      utils.GetEnvString("APP_RABBITMQ_WHATSAPP_QUEUE", "whatsapp_queue"),
			WhatsAppBroadcastName:      utils.GetEnvString("APP_WHATSAPP_BROADCAST_NAME", "appointments"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			SlotLockTTLInSeconds:       utils.GetEnvInt("APP_SLOT_LOCK_TTL_IN_SECONDS", 15),
		},
		Renderer: Renderer{
			BaseUrl:          utils.GetEnvString("RENDERER_BASE_URL", "http://localhost:3030"),
			TimeoutInSeconds: utils.GetEnvInt("RENDERER_TIMEOUT_IN_SECONDS", 30),
		},
		Company: Company{
			Name:    utils.GetEnvString("COMPANY_NAME", "Psymate Healthcare"),
			Address: utils.GetEnvString("COMPANY_ADDRESS", ""),
			Phone:   utils.GetEnvString("COMPANY_PHONE", ""),
			Email:   utils.GetEnvString("COMPANY_EMAIL", ""),
			Website: utils.GetEnvString("COMPANY_WEBSITE", ""),
			Logo:    utils.GetEnvString("COMPANY_LOGO", ""),
		},
	}
}

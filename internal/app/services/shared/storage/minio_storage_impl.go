package storage

import (
	"bytes"
	"context"
	"fmt"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/pkg/constvars"
	"sync"

	"psymate-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
	PublicURL   string
	UseSSL      bool
	Log         *zap.Logger
}

var (
	minioStorageInstance contracts.ObjectStorage
	onceMinioStorage     sync.Once
)

func NewMinioStorage(minioClient *minio.Client, driverConfig *config.DriverConfig, logger *zap.Logger) contracts.ObjectStorage {
	onceMinioStorage.Do(func() {
		minioStorageInstance = &minioStorage{
			MinioClient: minioClient,
			BucketName:  driverConfig.Minio.BucketName,
			PublicURL:   driverConfig.Minio.PublicURL,
			UseSSL:      driverConfig.Minio.UseSSL,
			Log:         logger,
		}
	})
	return minioStorageInstance
}

func (m *minioStorage) Upload(ctx context.Context, folder, objectName, contentType string, data []byte) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fullObjectName := fmt.Sprintf("%s/%s", folder, objectName)

	m.Log.Info("minioStorage.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, fullObjectName),
	)

	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		fullObjectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		m.Log.Error("minioStorage.Upload error creating object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, fullObjectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	url := m.objectURL(fullObjectName)
	m.Log.Info("minioStorage.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, fullObjectName),
	)
	return url, nil
}

func (m *minioStorage) objectURL(fullObjectName string) string {
	if m.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", m.PublicURL, m.BucketName, fullObjectName)
	}
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.MinioClient.EndpointURL().Host, m.BucketName, fullObjectName)
}

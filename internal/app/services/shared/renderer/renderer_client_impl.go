package renderer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type rendererClient struct {
	BaseUrl    string
	HttpClient *http.Client
	Log        *zap.Logger
}

var (
	rendererClientInstance contracts.DocumentRenderer
	onceRendererClient     sync.Once
)

func NewRendererClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.DocumentRenderer {
	onceRendererClient.Do(func() {
		rendererClientInstance = &rendererClient{
			BaseUrl: internalConfig.Renderer.BaseUrl,
			HttpClient: &http.Client{
				Timeout: time.Duration(internalConfig.Renderer.TimeoutInSeconds) * time.Second,
			},
			Log: logger,
		}
	})
	return rendererClientInstance
}

func (c *rendererClient) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("rendererClient.RenderPDF called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	url := fmt.Sprintf("%s/render/pdf", c.BaseUrl)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(html))
	if err != nil {
		c.Log.Error("rendererClient.RenderPDF error creating request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	request.Header.Set(constvars.HeaderContentType, constvars.MIMETextHTML)

	response, err := c.HttpClient.Do(request)
	if err != nil {
		c.Log.Error("rendererClient.RenderPDF error sending request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer response.Body.Close()

	if response.StatusCode != constvars.StatusOK {
		err := fmt.Errorf("renderer responded with status %d", response.StatusCode)
		c.Log.Error("rendererClient.RenderPDF unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode),
		)
		return nil, exceptions.ErrRenderPDF(err)
	}

	pdf, err := io.ReadAll(response.Body)
	if err != nil {
		c.Log.Error("rendererClient.RenderPDF error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrRenderPDF(err)
	}

	c.Log.Info("rendererClient.RenderPDF succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return pdf, nil
}

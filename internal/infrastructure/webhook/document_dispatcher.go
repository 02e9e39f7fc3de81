package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/erp/feeengine/internal/domain/billing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of a failed response is kept in the error
const maxErrorBody = 512

// DocumentDispatcher posts signed document generation requests to the collaborator.
// It only waits for acceptance; the generated document arrives through the callback.
type DocumentDispatcher struct {
	config     *Config
	signer     *HMACSigner
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *zap.Logger
}

// DispatcherOption configures a DocumentDispatcher
type DispatcherOption func(*DocumentDispatcher)

// WithHTTPClient replaces the default instrumented client
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *DocumentDispatcher) {
		d.httpClient = client
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *DocumentDispatcher) {
		d.logger = logger
	}
}

// NewDocumentDispatcher creates a dispatcher for the configured collaborator
func NewDocumentDispatcher(config *Config, opts ...DispatcherOption) (*DocumentDispatcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	signer, err := NewHMACSigner(config.Secret)
	if err != nil {
		return nil, err
	}

	d := &DocumentDispatcher{
		config: config,
		signer: signer,
		httpClient: &http.Client{
			Timeout:   config.timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	if config.RequestsPerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.burst())
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// RequestDocument delivers the request and returns once the collaborator accepted it
func (d *DocumentDispatcher) RequestDocument(ctx context.Context, req *billing.DocumentRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("webhook: failed to encode document request: %w", err)
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("webhook: rate limiter: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.config.DocumentURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(SignatureHeader, d.signer.Sign(body))
	httpReq.Header.Set("X-Invoice-ID", req.InvoiceID.String())

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("webhook: delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("webhook: collaborator returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	d.logger.Debug("document generation requested",
		zap.String("invoice_id", req.InvoiceID.String()),
		zap.String("invoice_number", req.InvoiceNumber),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

var _ billing.DocumentGenerator = (*DocumentDispatcher)(nil)

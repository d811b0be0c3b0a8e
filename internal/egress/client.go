package egress

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

const (
	backoffBase = 1 * time.Second
	backoffCap  = 30 * time.Second
)

// aeadTLS13Suites mirrors secure_transport.c's cipher suite string
// ("TLS_AES_256_GCM_SHA384:TLS_CHACHA20_POLY1305_SHA256:TLS_AES_128_GCM_SHA256").
var aeadTLS13Suites = []uint16{
	tls.TLS_AES_256_GCM_SHA384,
	tls.TLS_CHACHA20_POLY1305_SHA256,
	tls.TLS_AES_128_GCM_SHA256,
}

// ClientConfig configures the egress HTTP client.
type ClientConfig struct {
	Host         string
	Port         int
	URI          string
	APIKey       string
	AgentVersion string
	RetryLimit   int
	Compress     bool
	TLSVerify    bool
	Timeout      time.Duration
}

// Client POSTs batches to the ingestion endpoint with the headers and
// retry policy spec.md §4.3 specifies.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	encoder    Encoder
	compressor Compressor
	health     *Health
}

// NewClient builds a Client. TLS 1.3 with the AEAD suite list above is
// used whenever the configured port is 443; hostname verification relies
// on crypto/tls's own default check rather than a hand-rolled callback.
// That check matches the host against the certificate's Subject
// Alternative Names only; the Common Name is not consulted.
func NewClient(cfg ClientConfig, encoder Encoder, compressor Compressor) *Client {
	transport := &http.Transport{}
	if cfg.Port == 443 {
		transport.TLSClientConfig = &tls.Config{
			MinVersion:         tls.VersionTLS13,
			CipherSuites:       aeadTLS13Suites,
			InsecureSkipVerify: !cfg.TLSVerify,
		}
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		encoder:    encoder,
		compressor: compressor,
		health:     &Health{},
	}
}

// Health returns the client's health counters.
func (c *Client) Health() *Health { return c.health }

// fatalStatusError marks a 4xx response (other than 408/429) as
// non-retryable for this batch.
type fatalStatusError struct{ StatusCode int }

func (e *fatalStatusError) Error() string { return fmt.Sprintf("fatal status %d", e.StatusCode) }

// connError wraps a transport-level failure (DNS, dial, TLS handshake),
// always retryable.
type connError struct{ err error }

func (e *connError) Error() string { return e.err.Error() }
func (e *connError) Unwrap() error  { return e.err }

// Send encodes, optionally compresses, and POSTs the batch, retrying per
// spec.md §4.3: exponential backoff base 1s cap 30s jitter ±20%, up to
// retry_limit additional attempts. 4xx other than 408/429 is fatal; 5xx,
// 408, 429, and connection failures retry.
func (c *Client) Send(ctx context.Context, batch *Batch) error {
	n := batch.Count()
	c.health.beginSend(n)

	payload, err := c.encoder.Encode(batch.Events)
	if err != nil {
		c.health.recordFailure(n, "encode", false)
		return fmt.Errorf("encode batch: %w", err)
	}

	compressed := false
	if c.cfg.Compress {
		if out, applied := c.compressor.Compress(payload); applied {
			payload = out
			compressed = true
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryLimit; attempt++ {
		if attempt > 0 {
			if werr := sleepBackoff(ctx, attempt); werr != nil {
				_, isConn := lastErr.(*connError)
				c.health.recordFailure(n, errKind(isConn), isConn)
				return werr
			}
		}

		sendErr := c.post(ctx, payload, compressed, n)
		if sendErr == nil {
			c.health.recordSuccess(n)
			return nil
		}
		lastErr = sendErr

		if fatal, ok := sendErr.(*fatalStatusError); ok {
			c.health.recordFailure(n, "http", false)
			return fatal
		}
	}

	_, isConn := lastErr.(*connError)
	c.health.recordFailure(n, errKind(isConn), isConn)
	return fmt.Errorf("send failed after %d attempts: %w", c.cfg.RetryLimit+1, lastErr)
}

func errKind(isConn bool) string {
	if isConn {
		return "connection"
	}
	return "http"
}

func (c *Client) post(ctx context.Context, payload []byte, compressed bool, batchSize int) error {
	url := fmt.Sprintf("https://%s:%d%s", c.cfg.Host, c.cfg.Port, c.cfg.URI)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", c.encoder.ContentType())
	if compressed {
		req.Header.Set("Content-Encoding", c.compressor.Name())
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("User-Agent", "ThreatGuard-Agent/"+c.cfg.AgentVersion)
	req.Header.Set("X-ThreatGuard-Agent-Version", c.cfg.AgentVersion)
	req.Header.Set("X-ThreatGuard-Batch-Size", strconv.Itoa(batchSize))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &connError{err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == 408 || resp.StatusCode == 429:
		return fmt.Errorf("retryable status %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("server error status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return &fatalStatusError{StatusCode: resp.StatusCode}
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func sleepBackoff(ctx context.Context, attempt int) error {
	d := backoffBase * time.Duration(uint(1)<<uint(attempt-1))
	if d > backoffCap {
		d = backoffCap
	}
	jitter := time.Duration(float64(d) * (rand.Float64()*0.4 - 0.2))
	d += jitter
	if d < 0 {
		d = 0
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Close flushes any batch still buffered in batcher once, with the normal
// retry policy, then releases the HTTP transport.
func (c *Client) Close(ctx context.Context, batcher *Batcher) error {
	defer c.httpClient.CloseIdleConnections()

	if batch := batcher.Flush(); batch != nil {
		return c.Send(ctx, batch)
	}
	return nil
}

// Package restapi is the request pipeline shared by every REST endpoint:
// parameter validation, canonical serialization, HMAC request signing and
// verb-aware dispatch.
//
// A call flows through the pipeline as
//
//	params, err := schema.Apply(params, policy)      // validate
//	enc, err := dispatcher.Encode(method, path, params, schema)
//	header := signer.Headers(enc)                    // private calls only
//	payload, err := dispatcher.Send(ctx, enc, header, label)
//
// Encode renders the parameters once; the signer signs enc.Payload() and the
// dispatcher sends enc's bytes unchanged, so the signed bytes and the wire
// bytes are the same slice of memory.
package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Doer sends an HTTP request. *http.Client satisfies it; connection pooling,
// TLS, timeouts and proxies are the Doer's business.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Dispatcher moves encoded requests to the transport and returns response
// bodies. It never signs, retries, caches or rate-limits. A Dispatcher is safe
// for concurrent use once constructed.
type Dispatcher struct {
	BaseURL string
	Client  Doer
	Arrays  ArrayEncoding
	Logger  *zap.Logger
	Metrics *Metrics
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(d *Dispatcher)

// WithArrayEncoding sets how multi-valued query parameters are rendered.
func WithArrayEncoding(arrays ArrayEncoding) DispatcherOption {
	return func(d *Dispatcher) {
		d.Arrays = arrays
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.Logger = logger
		}
	}
}

// WithMetrics enables Prometheus request metrics.
func WithMetrics(metrics *Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.Metrics = metrics
	}
}

// NewDispatcher returns a Dispatcher sending requests to baseURL (scheme and
// host, no trailing slash) through client. A nil client means
// http.DefaultClient.
func NewDispatcher(baseURL string, client Doer, options ...DispatcherOption) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Dispatcher{
		BaseURL: baseURL,
		Client:  client,
		Logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Encode renders params for method and path using the dispatcher's array
// encoding and schema's key order.
func (d *Dispatcher) Encode(method Method, path string, params *Params, schema Schema) (*Encoded, error) {
	return Serializer{Schema: schema, Arrays: d.Arrays}.Encode(method, path, params)
}

// Dispatch encodes params and sends them without extra headers. It is the
// whole pipeline for public requests.
func (d *Dispatcher) Dispatch(ctx context.Context, method Method, path string, params *Params, schema Schema) ([]byte, error) {
	enc, err := d.Encode(method, path, params, schema)
	if err != nil {
		return nil, err
	}
	return d.Send(ctx, enc, nil, path)
}

// Send performs exactly one transport call for enc with header attached and
// returns the response body. label names the endpoint in logs and metrics;
// pass the path template rather than a bound path to keep cardinality low.
//
// Failures are typed: *UnsupportedMethodError before any I/O,
// *TransportError for network errors and non-2xx statuses, and
// *EmptyResponseError for a 2xx response without a body.
func (d *Dispatcher) Send(ctx context.Context, enc *Encoded, header http.Header, label string) ([]byte, error) {
	if label == "" {
		label = enc.Path
	}
	if _, err := enc.Method.placement(); err != nil {
		d.Metrics.failure(enc.Method, label, "unsupported_method")
		return nil, err
	}

	var body io.Reader
	if len(enc.Body) > 0 {
		body = bytes.NewReader(enc.Body)
	}
	req, err := http.NewRequestWithContext(ctx, string(enc.Method), d.BaseURL+enc.RequestURI(), body)
	if err != nil {
		return nil, &TransportError{Method: string(enc.Method), Path: enc.Path, Err: fmt.Errorf("error calling http.NewRequestWithContext() | %w", err)}
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := d.Client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		d.Metrics.observe(enc.Method, label, 0, elapsed)
		d.Metrics.failure(enc.Method, label, "transport")
		d.Logger.Warn("request failed",
			zap.String("method", string(enc.Method)),
			zap.String("path", enc.Path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, &TransportError{Method: string(enc.Method), Path: enc.Path, Err: err}
	}
	if res == nil || res.Body == nil {
		d.Metrics.observe(enc.Method, label, 0, elapsed)
		d.Metrics.failure(enc.Method, label, "empty_response")
		return nil, &EmptyResponseError{Method: string(enc.Method), Path: enc.Path}
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	d.Metrics.observe(enc.Method, label, res.StatusCode, time.Since(start))
	d.Logger.Debug("request dispatched",
		zap.String("method", string(enc.Method)),
		zap.String("path", enc.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(payload)),
	)
	if err != nil {
		d.Metrics.failure(enc.Method, label, "transport")
		return nil, &TransportError{
			Method:     string(enc.Method),
			Path:       enc.Path,
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Err:        fmt.Errorf("error calling io.ReadAll() | %w", err),
		}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		d.Metrics.failure(enc.Method, label, "http_status")
		return nil, &TransportError{
			Method:     string(enc.Method),
			Path:       enc.Path,
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       payload,
		}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		d.Metrics.failure(enc.Method, label, "empty_response")
		return nil, &EmptyResponseError{Method: string(enc.Method), Path: enc.Path, StatusCode: res.StatusCode}
	}
	return payload, nil
}

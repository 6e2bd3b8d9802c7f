// Package kucoin is a client for the KuCoin spot REST API.
//
// Every operation is an Endpoint descriptor (verb, path, parameter schema)
// run through the shared pipeline in package restapi: the parameters are
// validated against the schema, rendered once into their canonical wire form,
// signed when the endpoint is private, and dispatched on an http.Client owned
// by this Client. Typed methods such as GetTicker or PlaceOrder decode the
// response envelope; Client.Do is available for endpoints not modelled here.
//
// # Example Usage:
//
//	kc, err := kucoin.NewClient(kucoin.Credentials{
//		APIKey:     os.Getenv("KUCOIN_API_KEY"),
//		APISecret:  os.Getenv("KUCOIN_API_SECRET"),
//		Passphrase: os.Getenv("KUCOIN_API_PASSPHRASE"),
//		KeyVersion: 2,
//	}, kucoin.WithSandbox())
//	if err != nil {
//		log.Fatal(err)
//	}
//	ticker, err := kc.GetTicker(ctx, "BTC-USDT")
package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// Credentials of one API key. A Client copies them at construction; they
// are never logged.
type Credentials struct {
	APIKey     string
	APISecret  string
	Passphrase string
	// KeyVersion 2 sends the passphrase HMAC-signed; 0 or 1 sends it in
	// clear.
	KeyVersion int
}

// Client is the KuCoin REST client. It is safe for concurrent use. Multiple
// clients, e.g. one per API key, can live side by side; each owns its own
// http.Client.
type Client struct {
	signer     *restapi.Signer
	dispatcher *restapi.Dispatcher
	extraKeys  restapi.ExtraKeyPolicy
	baseURL    string
	Logger     *zap.Logger
}

type clientConfig struct {
	baseURL      string
	httpClient   restapi.Doer
	logger       *zap.Logger
	metrics      *restapi.Metrics
	arrays       restapi.ArrayEncoding
	extraKeys    restapi.ExtraKeyPolicy
	headerPrefix string
	clock        func() time.Time
	timeout      time.Duration
}

// Option configures a Client.
type Option func(cfg *clientConfig)

// WithSandbox points the client at the sandbox host.
func WithSandbox() Option {
	return func(cfg *clientConfig) {
		cfg.baseURL = SandboxURL
	}
}

// WithBaseURL points the client at an arbitrary host, e.g. a test server.
// A trailing slash is dropped.
func WithBaseURL(baseURL string) Option {
	return func(cfg *clientConfig) {
		cfg.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the client's own http.Client. Timeouts, proxies
// and connection pooling then belong to doer.
func WithHTTPClient(doer restapi.Doer) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = doer
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// WithMetrics records Prometheus request metrics.
func WithMetrics(metrics *restapi.Metrics) Option {
	return func(cfg *clientConfig) {
		cfg.metrics = metrics
	}
}

// WithArrayEncoding sets how multi-valued query parameters are rendered when
// the endpoint's schema does not pin an encoding, which also covers keys the
// schema does not declare. Defaults to repeated keys. Comma-list parameters
// such as the "symbols" of GetTradeFees are always comma joined.
func WithArrayEncoding(arrays restapi.ArrayEncoding) Option {
	return func(cfg *clientConfig) {
		cfg.arrays = arrays
	}
}

// WithExtraKeyPolicy sets what happens to parameters an endpoint's schema
// does not declare. Defaults to passing them through.
func WithExtraKeyPolicy(policy restapi.ExtraKeyPolicy) Option {
	return func(cfg *clientConfig) {
		cfg.extraKeys = policy
	}
}

// WithHeaderPrefix prefixes the authentication header names, e.g. "KC-".
func WithHeaderPrefix(prefix string) Option {
	return func(cfg *clientConfig) {
		cfg.headerPrefix = prefix
	}
}

// WithTimeout sets the overall request timeout of the client's own
// http.Client. It has no effect together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithClock replaces time.Now as the signing timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(cfg *clientConfig) {
		cfg.clock = clock
	}
}

// newHTTPClient returns the per-client transport. Connection stages get
// fixed budgets; timeout bounds the whole request.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: dialTimeout,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// NewClient creates a client for the API key in creds. Leave APIKey and
// APISecret empty for a client that can only call public endpoints; private
// calls then fail with ErrNoCredentials.
func NewClient(creds Credentials, options ...Option) (*Client, error) {
	if (creds.APIKey == "") != (creds.APISecret == "") {
		return nil, fmt.Errorf("%w; api key and secret must be set together", ErrInvalidArg)
	}
	if creds.KeyVersion < 0 || creds.KeyVersion > 3 {
		return nil, fmt.Errorf("%w; key version %d, expected 1, 2 or 3", ErrInvalidArg, creds.KeyVersion)
	}

	cfg := &clientConfig{
		baseURL: ProductionURL,
		logger:  zap.NewNop(),
		clock:   time.Now,
		timeout: requestTimeout,
	}
	for _, option := range options {
		option(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = newHTTPClient(cfg.timeout)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	kc := &Client{
		extraKeys: cfg.extraKeys,
		baseURL:   cfg.baseURL,
		Logger:    cfg.logger,
	}
	kc.dispatcher = restapi.NewDispatcher(cfg.baseURL, cfg.httpClient,
		restapi.WithArrayEncoding(cfg.arrays),
		restapi.WithLogger(cfg.logger),
		restapi.WithMetrics(cfg.metrics),
	)
	if creds.APIKey != "" {
		keyVersion := creds.KeyVersion
		if keyVersion == 0 {
			keyVersion = 1
		}
		kc.signer = restapi.NewSigner(creds.APIKey, creds.APISecret,
			restapi.WithPassphrase(creds.Passphrase, keyVersion),
			restapi.WithHeaderPrefix(cfg.headerPrefix),
			restapi.WithClock(cfg.clock),
		)
	}
	cfg.logger.Debug("kucoin client created",
		zap.String("base_url", cfg.baseURL),
		zap.Bool("authenticated", kc.signer != nil),
		zap.Stringer("extra_keys", cfg.extraKeys),
		zap.Stringer("arrays", cfg.arrays),
	)
	return kc, nil
}

// NewPublicClient creates a client without credentials.
func NewPublicClient(options ...Option) *Client {
	kc, _ := NewClient(Credentials{}, options...)
	return kc
}

// BaseURL returns the host the client sends requests to.
func (kc *Client) BaseURL() string {
	return kc.baseURL
}

// Authenticated reports whether the client can call private endpoints.
func (kc *Client) Authenticated() bool {
	return kc.signer != nil
}

// SetErrorLogger replaces the client's logger with a JSON zap logger writing
// to output and returns it. Call it before issuing requests; it is not safe
// to call concurrently with them.
//
// # Example Usage:
//
//	file, err := os.OpenFile("kucoin.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//	logger := kc.SetErrorLogger(file)
//	defer logger.Sync()
func (kc *Client) SetErrorLogger(output io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(output),
		zapcore.DebugLevel,
	)
	logger := zap.New(core)
	kc.Logger = logger
	kc.dispatcher.Logger = logger
	return logger
}

// Do runs ep with params through the pipeline and returns the raw response
// body. The exchange's response envelope is not inspected: a 2xx body holding
// an error code is returned as is.
//
// Validation, unbound path placeholders, unsupported verbs and missing
// credentials are all reported before any network I/O.
func (kc *Client) Do(ctx context.Context, ep Endpoint, params *restapi.Params) ([]byte, error) {
	if strings.ContainsAny(ep.Path, "{}") {
		return nil, fmt.Errorf("%w; %s path %s", ErrUnboundPath, ep.Name, ep.Path)
	}
	params, err := ep.Schema.Apply(params, kc.extraKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.Name, err)
	}
	enc, err := kc.dispatcher.Encode(ep.Method, ep.Path, params, ep.Schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.Name, err)
	}

	var header http.Header
	if ep.Visibility == restapi.Private {
		if kc.signer == nil {
			return nil, fmt.Errorf("%s: %w", ep.Name, ErrNoCredentials)
		}
		header = kc.signer.Headers(enc)
	}
	return kc.dispatcher.Send(ctx, enc, header, ep.label())
}

// call runs ep and decodes the envelope's data into target. A nil target
// discards the data.
func (kc *Client) call(ctx context.Context, ep Endpoint, params *restapi.Params, target any) error {
	payload, err := kc.Do(ctx, ep, params)
	if err != nil {
		return err
	}
	return decodeEnvelope(payload, target)
}

// Processes the response envelope and unmarshals its data into target.
// Non-success codes become *APIError.
func decodeEnvelope(payload []byte, target any) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("error unmarshalling response envelope | %w", err)
	}
	if env.Code != successCode {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}
	if target == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("error unmarshalling response data | %w", err)
	}
	return nil
}

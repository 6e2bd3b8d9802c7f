package restapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"
)

// Wire names of the authentication headers, before any prefix is applied.
const (
	HeaderKey        = "API-KEY"
	HeaderSign       = "API-SIGN"
	HeaderTimestamp  = "API-TIMESTAMP"
	HeaderPassphrase = "API-PASSPHRASE"
	HeaderKeyVersion = "API-KEY-VERSION"
)

// Sign returns base64(HMAC-SHA256(secret, timestamp+method+path+payload)).
// path carries the version prefix but neither host nor query string; the
// query string, if any, is payload.
func Sign(secret, timestamp string, method Method, path, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(method))
	mac.Write([]byte(path))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignPassphrase returns base64(HMAC-SHA256(secret, passphrase)), the form
// version 2 API keys send instead of the clear passphrase.
func SignPassphrase(secret, passphrase string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(passphrase))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Timestamp formats t as milliseconds since the Unix epoch.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Signer produces the authentication headers for private requests. It holds
// the credentials and nothing else; a Signer is immutable and safe for
// concurrent use.
type Signer struct {
	key        string
	secret     string
	passphrase string
	keyVersion int
	prefix     string
	now        func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(s *Signer)

// WithPassphrase sets the API passphrase and key version. Version 2 and up
// send the passphrase HMAC-signed along with an API-KEY-VERSION header;
// version 1 sends it in clear.
func WithPassphrase(passphrase string, keyVersion int) SignerOption {
	return func(s *Signer) {
		s.passphrase = passphrase
		s.keyVersion = keyVersion
	}
}

// WithHeaderPrefix prepends prefix to every authentication header name, e.g.
// "KC-" for KC-API-KEY.
func WithHeaderPrefix(prefix string) SignerOption {
	return func(s *Signer) {
		s.prefix = prefix
	}
}

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// NewSigner returns a Signer for the given API key and secret.
func NewSigner(key, secret string, options ...SignerOption) *Signer {
	s := &Signer{
		key:        key,
		secret:     secret,
		keyVersion: 1,
		now:        time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Headers computes a fresh timestamp and signature covering enc and returns
// the full set of headers for a private request.
func (s *Signer) Headers(enc *Encoded) http.Header {
	ts := Timestamp(s.now())
	h := make(http.Header, 6)
	// assigned directly so header names keep their exact casing on the wire
	h[s.prefix+HeaderKey] = []string{s.key}
	h[s.prefix+HeaderTimestamp] = []string{ts}
	h[s.prefix+HeaderSign] = []string{Sign(s.secret, ts, enc.Method, enc.Path, enc.Payload())}
	if s.passphrase != "" {
		if s.keyVersion >= 2 {
			h[s.prefix+HeaderPassphrase] = []string{SignPassphrase(s.secret, s.passphrase)}
			h[s.prefix+HeaderKeyVersion] = []string{strconv.Itoa(s.keyVersion)}
		} else {
			h[s.prefix+HeaderPassphrase] = []string{s.passphrase}
		}
	}
	h.Set("Content-Type", "application/json")
	return h
}

package kucoin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readysetliqd/kucoin-library-go/pkg/config"
)

func TestNewClientFromConfig(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":[]}`)
	cfg := &config.Config{
		APIKey:        testKey,
		APISecret:     testSecret,
		Passphrase:    "my-passphrase",
		KeyVersion:    2,
		Sandbox:       true,
		BaseURL:       srv.URL,
		HeaderPrefix:  "KC-",
		ArrayEncoding: "comma",
		ExtraKeys:     "pass",
	}

	kc, err := NewClientFromConfig(cfg, WithHTTPClient(srv.Client()), WithClock(fixedClock))
	require.NoError(t, err)
	assert.Equal(t, srv.URL, kc.BaseURL(), "base_url wins over sandbox")

	_, err = kc.GetTradeFees(context.Background(), "BTC-USDT", "ETH-USDT")
	require.NoError(t, err)
	req := stub.last(t)
	assert.Equal(t, "symbols=BTC-USDT%2CETH-USDT", req.rawQuery)
	assert.Equal(t, []string{testKey}, req.header.Values("KC-API-KEY"))
	assert.Equal(t, []string{"2"}, req.header.Values("KC-API-KEY-VERSION"))

	_, err = NewClientFromConfig(&config.Config{APIKey: testKey, ArrayEncoding: "repeat", ExtraKeys: "pass"})
	assert.Error(t, err)

	_, err = NewClientFromConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestNewClientFromConfigSandbox(t *testing.T) {
	kc, err := NewClientFromConfig(&config.Config{Sandbox: true, ArrayEncoding: "repeat", ExtraKeys: "pass"})
	require.NoError(t, err)
	assert.Equal(t, SandboxURL, kc.BaseURL())
	assert.False(t, kc.Authenticated())
}

package kucoin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

const (
	testKey       = "key-1"
	testSecret    = "s3cr3t"
	testTimestamp = "1700000000000"
)

func fixedClock() time.Time { return time.UnixMilli(1700000000000) }

type capture struct {
	method   string
	path     string
	rawQuery string
	body     string
	header   http.Header
}

type exchangeStub struct {
	mu       sync.Mutex
	requests []capture
	status   int
	response string
}

// newExchange starts a server answering every request with status and
// response, recording what it received.
func newExchange(t *testing.T, status int, response string) (*httptest.Server, *exchangeStub) {
	t.Helper()
	stub := &exchangeStub{status: status, response: response}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, capture{
			method:   r.Method,
			path:     r.URL.Path,
			rawQuery: r.URL.RawQuery,
			body:     string(body),
			header:   r.Header.Clone(),
		})
		stub.mu.Unlock()
		w.WriteHeader(stub.status)
		_, _ = w.Write([]byte(stub.response))
	}))
	t.Cleanup(srv.Close)
	return srv, stub
}

func (s *exchangeStub) last(t *testing.T) capture {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests, "no request reached the server")
	return s.requests[len(s.requests)-1]
}

func (s *exchangeStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newTestClient(t *testing.T, srv *httptest.Server, options ...Option) *Client {
	t.Helper()
	options = append([]Option{WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithClock(fixedClock)}, options...)
	kc, err := NewClient(Credentials{APIKey: testKey, APISecret: testSecret}, options...)
	require.NoError(t, err)
	return kc
}

func TestNewClient(t *testing.T) {
	kc, err := NewClient(Credentials{APIKey: testKey, APISecret: testSecret})
	require.NoError(t, err)
	assert.Equal(t, ProductionURL, kc.BaseURL())
	assert.True(t, kc.Authenticated())

	kc, err = NewClient(Credentials{APIKey: testKey, APISecret: testSecret}, WithSandbox())
	require.NoError(t, err)
	assert.Equal(t, SandboxURL, kc.BaseURL())

	kc, err = NewClient(Credentials{}, WithBaseURL("http://127.0.0.1:8080/"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", kc.BaseURL())
	assert.False(t, kc.Authenticated())

	_, err = NewClient(Credentials{APIKey: testKey})
	assert.ErrorIs(t, err, ErrInvalidArg, "key without secret")

	_, err = NewClient(Credentials{APISecret: testSecret})
	assert.ErrorIs(t, err, ErrInvalidArg, "secret without key")

	_, err = NewClient(Credentials{APIKey: testKey, APISecret: testSecret, KeyVersion: 9})
	assert.ErrorIs(t, err, ErrInvalidArg)

	assert.False(t, NewPublicClient().Authenticated())
}

func TestGetTransferableSignsCanonicalQuery(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK,
		`{"code":"200000","data":{"currency":"BTC","balance":"1.5","available":"1","holds":"0.5","transferable":"1"}}`)
	kc := newTestClient(t, srv)

	got, err := kc.GetTransferable(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTC", got.Currency)
	assert.True(t, got.Transferable.Equal(decimal.NewFromInt(1)))

	req := stub.last(t)
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/api/v1/accounts/transferable", req.path)
	assert.Equal(t, "currency=BTC", req.rawQuery)
	assert.Empty(t, req.body)
	assert.Equal(t, []string{testKey}, req.header.Values("API-KEY"))
	assert.Equal(t, []string{testTimestamp}, req.header.Values("API-TIMESTAMP"))
	// base64(HMAC_SHA256("s3cr3t", "1700000000000GET/api/v1/accounts/transferablecurrency=BTC"))
	assert.Equal(t, []string{"Q0MjFvvjPMJ0ZzUq9mKG9i99QPUXTg6ffbdKgY+Vck8="}, req.header.Values("API-SIGN"))
}

func TestPassphraseAndHeaderPrefix(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{}}`)
	kc, err := NewClient(Credentials{APIKey: testKey, APISecret: testSecret, Passphrase: "my-passphrase", KeyVersion: 2},
		WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithClock(fixedClock), WithHeaderPrefix("KC-"))
	require.NoError(t, err)

	_, err = kc.GetTransferable(context.Background(), "BTC")
	require.NoError(t, err)

	req := stub.last(t)
	assert.Equal(t, []string{"ms4ZV5DkHL7KWZIU2HJzmF9FZUEOJSwDUP7ulKOF1fo="}, req.header.Values("KC-API-PASSPHRASE"))
	assert.Equal(t, []string{"2"}, req.header.Values("KC-API-KEY-VERSION"))
	assert.Equal(t, []string{"Q0MjFvvjPMJ0ZzUq9mKG9i99QPUXTg6ffbdKgY+Vck8="}, req.header.Values("KC-API-SIGN"))
}

func TestPublicCallsAreUnsigned(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK,
		`{"code":"200000","data":{"sequence":"1","price":"30000","bestBid":"29999","bestAsk":"30001","time":1700000000000}}`)
	kc := newTestClient(t, srv)

	ticker, err := kc.GetTicker(context.Background(), "BTC-USDT")
	require.NoError(t, err)
	assert.True(t, ticker.BestAsk.Equal(decimal.NewFromInt(30001)))

	req := stub.last(t)
	assert.Equal(t, "/api/v1/market/orderbook/level1", req.path)
	assert.Equal(t, "symbol=BTC-USDT", req.rawQuery)
	assert.Empty(t, req.header.Get("API-SIGN"))
	assert.Empty(t, req.header.Get("API-KEY"))
}

func TestPrivateCallWithoutCredentials(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":[]}`)
	kc := NewPublicClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

	_, err := kc.ListAccounts(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Equal(t, 0, stub.count())
}

func TestValidationBeforeIO(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000"}`)
	kc := newTestClient(t, srv)

	_, err := kc.Do(context.Background(), EndpointInnerTransfer, restapi.NewParams().Set("currency", "USDT"))
	var verr *restapi.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"clientOid", "from", "to", "amount"}, verr.Missing)
	assert.ErrorIs(t, err, restapi.ErrValidation)

	_, err = kc.Do(context.Background(), EndpointPartOrderBook, restapi.NewParams().Set("symbol", "BTC-USDT"))
	assert.ErrorIs(t, err, ErrUnboundPath)

	_, err = kc.Do(context.Background(), Endpoint{Name: "Patch", Method: "PATCH", Path: "/api/v1/x"}, nil)
	assert.ErrorIs(t, err, restapi.ErrUnsupportedMethod)

	_, err = kc.GetKlines(context.Background(), "BTC-USDT", "2min")
	assert.ErrorIs(t, err, ErrInvalidArg)

	_, err = kc.GetPartOrderBook(context.Background(), "BTC-USDT", 50)
	assert.ErrorIs(t, err, ErrInvalidArg)

	assert.Equal(t, 0, stub.count(), "nothing may reach the network")
}

func TestExtraKeyPolicy(t *testing.T) {
	params := func() *restapi.Params {
		return restapi.NewParams().Set("symbol", "BTC-USDT").Set("debug", true)
	}

	t.Run("pass", func(t *testing.T) {
		srv, stub := newExchange(t, http.StatusOK, `{"code":"200000"}`)
		kc := newTestClient(t, srv)
		_, err := kc.Do(context.Background(), EndpointTicker, params())
		require.NoError(t, err)
		assert.Equal(t, "symbol=BTC-USDT&debug=true", stub.last(t).rawQuery)
	})

	t.Run("strip", func(t *testing.T) {
		srv, stub := newExchange(t, http.StatusOK, `{"code":"200000"}`)
		kc := newTestClient(t, srv, WithExtraKeyPolicy(restapi.StripExtraKeys))
		_, err := kc.Do(context.Background(), EndpointTicker, params())
		require.NoError(t, err)
		assert.Equal(t, "symbol=BTC-USDT", stub.last(t).rawQuery)
	})

	t.Run("reject", func(t *testing.T) {
		srv, stub := newExchange(t, http.StatusOK, `{"code":"200000"}`)
		kc := newTestClient(t, srv, WithExtraKeyPolicy(restapi.RejectExtraKeys))
		_, err := kc.Do(context.Background(), EndpointTicker, params())
		var verr *restapi.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"debug"}, verr.Unknown)
		assert.Equal(t, 0, stub.count())
	})
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv, _ := newExchange(t, http.StatusOK, `{"code":"400100","msg":"Parameter Error"}`)
	kc := newTestClient(t, srv)

	_, err := kc.GetTicker(context.Background(), "NOPE-USDT")
	assert.True(t, IsAPIError(err, "400100"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Parameter Error", apiErr.Msg)

	// Do hands back the envelope untouched
	payload, err := kc.Do(context.Background(), EndpointTicker, restapi.NewParams().Set("symbol", "NOPE-USDT"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"400100","msg":"Parameter Error"}`, string(payload))
}

func TestHTTPErrorIsTransportError(t *testing.T) {
	srv, _ := newExchange(t, http.StatusUnauthorized, `{"code":"400005","msg":"Invalid KC-API-SIGN"}`)
	kc := newTestClient(t, srv)

	_, err := kc.ListAccounts(context.Background())
	var terr *restapi.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusUnauthorized, terr.StatusCode)
	assert.ErrorIs(t, err, restapi.ErrTransport)
	assert.False(t, IsAPIError(err, ""))
}

func TestPlaceLimitOrder(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"orderId":"5bd6e9286d99522a52e458de"}}`)
	kc := newTestClient(t, srv)

	id, err := kc.PlaceLimitOrder(context.Background(), Buy, "BTC-USDT",
		decimal.RequireFromString("30000.5"), decimal.RequireFromString("0.01"),
		POWithClientOID("abc"))
	require.NoError(t, err)
	assert.Equal(t, "5bd6e9286d99522a52e458de", id)

	req := stub.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/v1/orders", req.path)
	assert.Empty(t, req.rawQuery)
	assert.Equal(t, `{"clientOid":"abc","side":"buy","symbol":"BTC-USDT","type":"limit","price":"30000.5","size":"0.01"}`, req.body)
	assert.Equal(t, []string{"87xbCcZqRVdNm2DHADMY6B/MQ/Sjykr34OKwzkqUVUg="}, req.header.Values("API-SIGN"))
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
}

func TestPlaceMarketOrderWithFunds(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"orderId":"o-1"}}`)
	kc := newTestClient(t, srv)

	_, err := kc.PlaceMarketOrder(context.Background(), Sell, "ETH-USDT", decimal.RequireFromString("1"),
		POWithClientOID("cid"), POWithFunds(decimal.RequireFromString("100")), POWithSTP("CN"))
	require.NoError(t, err)

	req := stub.last(t)
	assert.Equal(t, `{"clientOid":"cid","side":"sell","symbol":"ETH-USDT","type":"market","stp":"CN","funds":"100"}`, req.body)
	assert.Equal(t, restapi.Sign(testSecret, testTimestamp, restapi.MethodPost, "/api/v1/orders", req.body), req.header.Get("API-SIGN"))

	_, err = kc.PlaceOrder(context.Background(), "hold", "ETH-USDT", MarketOrder)
	assert.ErrorIs(t, err, ErrInvalidArg)
}

func TestPlaceOrderGeneratesClientOID(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"orderId":"o-1"}}`)
	kc := newTestClient(t, srv)

	_, err := kc.PlaceLimitOrder(context.Background(), Buy, "BTC-USDT", decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.NoError(t, err)
	first := stub.last(t).body
	_, err = kc.PlaceLimitOrder(context.Background(), Buy, "BTC-USDT", decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Contains(t, first, `"clientOid":"`)
	assert.NotEqual(t, first, stub.last(t).body)
}

func TestCancelOrderUsesBoundPath(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"cancelledOrderIds":["o-1"]}}`)
	kc := newTestClient(t, srv)

	ids, err := kc.CancelOrder(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o-1"}, ids)

	req := stub.last(t)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/api/v1/orders/o-1", req.path)
	assert.Empty(t, req.rawQuery)
	assert.Equal(t, restapi.Sign(testSecret, testTimestamp, restapi.MethodDelete, "/api/v1/orders/o-1", ""), req.header.Get("API-SIGN"))

	_, err = kc.CancelOrder(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnboundPath)
}

func TestCancelAllOrdersQuery(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"cancelledOrderIds":[]}}`)
	kc := newTestClient(t, srv)

	_, err := kc.CancelAllOrders(context.Background(), "BTC-USDT")
	require.NoError(t, err)
	req := stub.last(t)
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "symbol=BTC-USDT", req.rawQuery)
	assert.Empty(t, req.body)
}

func TestGetPartOrderBook(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK,
		`{"code":"200000","data":{"sequence":"7","time":1700000000000,"bids":[["29999","1.5"]],"asks":[["30001","0.5"],["30002","2"]]}}`)
	kc := newTestClient(t, srv)

	book, err := kc.GetPartOrderBook(context.Background(), "BTC-USDT", 20)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/market/orderbook/level2_20", stub.last(t).path)
	require.Len(t, book.Bids, 1)
	require.Len(t, book.Asks, 2)
	assert.True(t, book.Asks[1].Size.Equal(decimal.NewFromInt(2)))
}

func TestGetKlinesTimeRange(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK,
		`{"code":"200000","data":[["1700003600","1","2","3","0.5","10","20"],["1700000000","1","2","3","0.5","10","20"]]}`)
	kc := newTestClient(t, srv)

	start := time.Unix(1700000000, 0)
	klines, err := kc.GetKlines(context.Background(), "BTC-USDT", Interval1Hour, KLWithTimeRange(start, start.Add(time.Hour)))
	require.NoError(t, err)
	require.Len(t, klines, 2)
	assert.Equal(t, int64(1700003600), klines[0].Time)
	assert.Equal(t, "symbol=BTC-USDT&type=1hour&startAt=1700000000&endAt=1700003600", stub.last(t).rawQuery)
}

func TestGetTradeFeesArrayEncoding(t *testing.T) {
	response := `{"code":"200000","data":[{"symbol":"BTC-USDT","takerFeeRate":"0.001","makerFeeRate":"0.001"}]}`

	for _, options := range [][]Option{
		nil,
		{WithArrayEncoding(restapi.RepeatKeys)},
		{WithArrayEncoding(restapi.CommaJoin)},
	} {
		srv, stub := newExchange(t, http.StatusOK, response)
		kc := newTestClient(t, srv, options...)
		fees, err := kc.GetTradeFees(context.Background(), "BTC-USDT", "ETH-USDT")
		require.NoError(t, err)
		assert.Equal(t, "symbols=BTC-USDT%2CETH-USDT", stub.last(t).rawQuery)
		require.Len(t, fees, 1)
		assert.True(t, fees[0].TakerFeeRate.Equal(decimal.RequireFromString("0.001")))

		_, err = kc.GetTradeFees(context.Background())
		assert.ErrorIs(t, err, ErrInvalidArg)
	}

	// undeclared keys still follow the client default
	srv, stub := newExchange(t, http.StatusOK, response)
	kc := newTestClient(t, srv)
	_, err := kc.Do(context.Background(), EndpointTradeFees, restapi.NewParams().
		Set("symbols", []string{"BTC-USDT"}).
		Set("extra", []string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, "symbols=BTC-USDT&extra=a&extra=b", stub.last(t).rawQuery)
}

func TestGetFiatPricesWire(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"BTC":"30000.5","ETH":"1800"}}`)
	kc := newTestClient(t, srv)

	prices, err := kc.GetFiatPrices(context.Background(), "USD", "BTC", "ETH")
	require.NoError(t, err)
	req := stub.last(t)
	assert.Equal(t, "/api/v1/prices", req.path)
	assert.Equal(t, "base=USD&currencies=BTC%2CETH", req.rawQuery)
	require.Len(t, prices, 2)
	assert.True(t, prices["BTC"].Equal(decimal.RequireFromString("30000.5")))

	_, err = kc.GetFiatPrices(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, stub.last(t).rawQuery)
}

func TestLedgerOptions(t *testing.T) {
	srv, stub := newExchange(t, http.StatusOK, `{"code":"200000","data":{"currentPage":1,"pageSize":50,"totalNum":0,"totalPage":0,"items":[]}}`)
	kc := newTestClient(t, srv)

	start := time.UnixMilli(1699990000000)
	_, err := kc.GetAccountLedgers(context.Background(),
		LGWithPage(1, 50), LGWithCurrency("BTC"), LGWithTimeRange(start, fixedClock()))
	require.NoError(t, err)
	// schema order, not option order
	assert.Equal(t, "currency=BTC&startAt=1699990000000&endAt=1700000000000&currentPage=1&pageSize=50", stub.last(t).rawQuery)
}

func TestGetServerTime(t *testing.T) {
	srv, _ := newExchange(t, http.StatusOK, `{"code":"200000","data":1700000000123}`)
	kc := newTestClient(t, srv)

	got, err := kc.GetServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), got.UnixMilli())
}

func TestSetErrorLogger(t *testing.T) {
	srv, _ := newExchange(t, http.StatusOK, `{"code":"200000","data":{"status":"open","msg":""}}`)
	kc := newTestClient(t, srv)

	buf := new(bytes.Buffer)
	logger := kc.SetErrorLogger(buf)
	require.NotNil(t, logger)

	online, status, err := kc.SystemIsOnline(context.Background())
	require.NoError(t, err)
	assert.True(t, online)
	assert.Equal(t, "open", status)
	assert.Contains(t, buf.String(), "request dispatched")
	assert.NotContains(t, buf.String(), testSecret)
}

func TestClientsAreIndependent(t *testing.T) {
	srvA, stubA := newExchange(t, http.StatusOK, `{"code":"200000","data":[]}`)
	srvB, stubB := newExchange(t, http.StatusOK, `{"code":"200000","data":[]}`)
	a := newTestClient(t, srvA)
	b, err := NewClient(Credentials{APIKey: "key-2", APISecret: "other"},
		WithBaseURL(srvB.URL), WithHTTPClient(srvB.Client()), WithClock(fixedClock))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := a.ListAccounts(context.Background()); err != nil {
				failures.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := b.ListAccounts(context.Background()); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), failures.Load())
	assert.Equal(t, 16, stubA.count())
	assert.Equal(t, 16, stubB.count())
	assert.Equal(t, []string{testKey}, stubA.last(t).header.Values("API-KEY"))
	assert.Equal(t, []string{"key-2"}, stubB.last(t).header.Values("API-KEY"))
}

package kucoin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// #region Public Market Data endpoints

// Calls KuCoin API public market data "timestamp" endpoint. Gets the server's
// time.
func (kc *Client) GetServerTime(ctx context.Context) (time.Time, error) {
	var ms int64
	err := kc.call(ctx, EndpointServerTime, nil, &ms)
	if err != nil {
		return time.Time{}, fmt.Errorf("error calling GetServerTime() | %w", err)
	}
	return time.UnixMilli(ms), nil
}

// Calls KuCoin API public market data "status" endpoint. Gets the current
// service status: "open", "close" or "cancelonly".
func (kc *Client) GetServiceStatus(ctx context.Context) (*ServiceStatus, error) {
	status := &ServiceStatus{}
	err := kc.call(ctx, EndpointServiceStatus, nil, status)
	if err != nil {
		return nil, fmt.Errorf("error calling GetServiceStatus() | %w", err)
	}
	return status, nil
}

// Calls KuCoin API public market data "status" endpoint and returns true if
// the service is open. Returns false and the current status if not. Returns
// false and an error if calling the API failed.
//
// # Example Usage:
//
//	open, status, err := kc.SystemIsOnline(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !open {
//		log.Println(status)
//	}
func (kc *Client) SystemIsOnline(ctx context.Context) (bool, string, error) {
	status, err := kc.GetServiceStatus(ctx)
	if err != nil {
		return false, "", err
	}
	return status.Status == "open", status.Status, nil
}

// Calls KuCoin API public market data "symbols" endpoint. Gets trading rules
// for every symbol, or for one market ("USDS", "BTC", ...) if market is passed.
func (kc *Client) ListSymbols(ctx context.Context, market ...string) ([]Symbol, error) {
	params := restapi.NewParams()
	if len(market) > 0 {
		params.Set("market", market[0])
	}
	var symbols []Symbol
	err := kc.call(ctx, EndpointSymbols, params, &symbols)
	if err != nil {
		return nil, fmt.Errorf("error calling ListSymbols() | %w", err)
	}
	return symbols, nil
}

// Calls KuCoin API public market data "orderbook/level1" endpoint. Gets last
// trade price, size and best bid/ask of symbol.
//
// # Example Usage:
//
//	ticker, err := kc.GetTicker(ctx, "BTC-USDT")
//	log.Println(ticker.BestBid, ticker.BestAsk)
func (kc *Client) GetTicker(ctx context.Context, symbol string) (*Ticker, error) {
	ticker := &Ticker{}
	err := kc.call(ctx, EndpointTicker, restapi.NewParams().Set("symbol", symbol), ticker)
	if err != nil {
		return nil, fmt.Errorf("error calling GetTicker() | %w", err)
	}
	return ticker, nil
}

// Calls KuCoin API public market data "allTickers" endpoint. Gets 24h
// statistics of every symbol.
func (kc *Client) GetAllTickers(ctx context.Context) (*AllTickers, error) {
	tickers := &AllTickers{}
	err := kc.call(ctx, EndpointAllTickers, nil, tickers)
	if err != nil {
		return nil, fmt.Errorf("error calling GetAllTickers() | %w", err)
	}
	return tickers, nil
}

// Calls KuCoin API public market data "stats" endpoint. Gets 24h statistics
// of symbol.
func (kc *Client) Get24hStats(ctx context.Context, symbol string) (*Stats24h, error) {
	stats := &Stats24h{}
	err := kc.call(ctx, EndpointStats24h, restapi.NewParams().Set("symbol", symbol), stats)
	if err != nil {
		return nil, fmt.Errorf("error calling Get24hStats() | %w", err)
	}
	return stats, nil
}

// Calls KuCoin API public market data "markets" endpoint. Lists the market
// names symbols are grouped in.
func (kc *Client) ListMarkets(ctx context.Context) ([]string, error) {
	var markets []string
	err := kc.call(ctx, EndpointMarkets, nil, &markets)
	if err != nil {
		return nil, fmt.Errorf("error calling ListMarkets() | %w", err)
	}
	return markets, nil
}

// Calls KuCoin API public market data "orderbook/level2_{depth}" endpoint.
// Gets the top depth levels of each side of symbol's book. depth must be 20
// or 100.
func (kc *Client) GetPartOrderBook(ctx context.Context, symbol string, depth int) (*OrderBook, error) {
	if depth != 20 && depth != 100 {
		return nil, fmt.Errorf("error calling GetPartOrderBook() | %w; depth %d, expected 20 or 100", ErrInvalidArg, depth)
	}
	ep, err := EndpointPartOrderBook.Bind(strconv.Itoa(depth))
	if err != nil {
		return nil, fmt.Errorf("error calling GetPartOrderBook() | %w", err)
	}
	book := &OrderBook{}
	err = kc.call(ctx, ep, restapi.NewParams().Set("symbol", symbol), book)
	if err != nil {
		return nil, fmt.Errorf("error calling GetPartOrderBook() | %w", err)
	}
	return book, nil
}

// Calls KuCoin API public market data "histories" endpoint. Gets the most
// recent trades of symbol.
func (kc *Client) GetTradeHistory(ctx context.Context, symbol string) ([]Trade, error) {
	var trades []Trade
	err := kc.call(ctx, EndpointTradeHistory, restapi.NewParams().Set("symbol", symbol), &trades)
	if err != nil {
		return nil, fmt.Errorf("error calling GetTradeHistory() | %w", err)
	}
	return trades, nil
}

// Calls KuCoin API public market data "candles" endpoint. Gets candles of
// symbol for interval, newest first. Accepts functional option
// KLWithTimeRange.
//
// Enum - 'interval': Interval1Min, Interval3Min, ... Interval1Week
//
// # Example Usage:
//
//	klines, err := kc.GetKlines(ctx, "BTC-USDT", kucoin.Interval1Hour,
//		kucoin.KLWithTimeRange(time.Now().Add(-24*time.Hour), time.Now()))
func (kc *Client) GetKlines(ctx context.Context, symbol, interval string, options ...GetKlinesOption) ([]Kline, error) {
	if !validIntervals[interval] {
		return nil, fmt.Errorf("error calling GetKlines() | %w; interval %q", ErrInvalidArg, interval)
	}
	params := restapi.NewParams().Set("symbol", symbol).Set("type", interval)
	for _, option := range options {
		option(params)
	}
	var klines []Kline
	err := kc.call(ctx, EndpointKlines, params, &klines)
	if err != nil {
		return nil, fmt.Errorf("error calling GetKlines() | %w", err)
	}
	return klines, nil
}

// Calls KuCoin API public market data "currencies" endpoint. Gets every
// listed currency with its chains.
func (kc *Client) ListCurrencies(ctx context.Context) ([]Currency, error) {
	var currencies []Currency
	err := kc.call(ctx, EndpointCurrencies, nil, &currencies)
	if err != nil {
		return nil, fmt.Errorf("error calling ListCurrencies() | %w", err)
	}
	return currencies, nil
}

// Calls KuCoin API public market data "currencies/{currency}" endpoint. Pass a
// chain to restrict Chains to that one.
func (kc *Client) GetCurrency(ctx context.Context, currency string, chain ...string) (*Currency, error) {
	ep, err := EndpointCurrency.Bind(currency)
	if err != nil {
		return nil, fmt.Errorf("error calling GetCurrency() | %w", err)
	}
	params := restapi.NewParams()
	if len(chain) > 0 {
		params.Set("chain", chain[0])
	}
	info := &Currency{}
	err = kc.call(ctx, ep, params, info)
	if err != nil {
		return nil, fmt.Errorf("error calling GetCurrency() | %w", err)
	}
	return info, nil
}

// Calls KuCoin API public market data "prices" endpoint. Gets the fiat price
// of currencies, or of every currency if none are passed, in base ("USD" if
// empty).
func (kc *Client) GetFiatPrices(ctx context.Context, base string, currencies ...string) (map[string]decimal.Decimal, error) {
	params := restapi.NewParams()
	if base != "" {
		params.Set("base", base)
	}
	if len(currencies) > 0 {
		params.Set("currencies", currencies)
	}
	prices := make(map[string]decimal.Decimal)
	err := kc.call(ctx, EndpointFiatPrices, params, &prices)
	if err != nil {
		return nil, fmt.Errorf("error calling GetFiatPrices() | %w", err)
	}
	return prices, nil
}

// Calls KuCoin API "bullet-public" endpoint. Gets a token and the instance
// servers for the public websocket feed.
func (kc *Client) GetBulletPublic(ctx context.Context) (*BulletToken, error) {
	token := &BulletToken{}
	err := kc.call(ctx, EndpointBulletPublic, nil, token)
	if err != nil {
		return nil, fmt.Errorf("error calling GetBulletPublic() | %w", err)
	}
	return token, nil
}

// #endregion

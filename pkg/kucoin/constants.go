package kucoin

import "time"

const (
	ProductionURL = "https://api.kucoin.com"
	SandboxURL    = "https://openapi-sandbox.kucoin.com"
)

// Envelope code of a successful response.
const successCode = "200000"

// Default timeouts for the client-owned http.Client.
const (
	requestTimeout        = 10 * time.Second
	dialTimeout           = 5 * time.Second
	tlsHandshakeTimeout   = 5 * time.Second
	responseHeaderTimeout = 5 * time.Second
)

// Order sides
const (
	Buy  = "buy"
	Sell = "sell"
)

// Order types
const (
	LimitOrder  = "limit"
	MarketOrder = "market"
)

// Account types
const (
	AccountMain   = "main"
	AccountTrade  = "trade"
	AccountMargin = "margin"
)

// Kline intervals accepted by GetKlines
const (
	Interval1Min   = "1min"
	Interval3Min   = "3min"
	Interval5Min   = "5min"
	Interval15Min  = "15min"
	Interval30Min  = "30min"
	Interval1Hour  = "1hour"
	Interval2Hour  = "2hour"
	Interval4Hour  = "4hour"
	Interval6Hour  = "6hour"
	Interval8Hour  = "8hour"
	Interval12Hour = "12hour"
	Interval1Day   = "1day"
	Interval1Week  = "1week"
)

var validIntervals = map[string]bool{
	Interval1Min: true, Interval3Min: true, Interval5Min: true, Interval15Min: true,
	Interval30Min: true, Interval1Hour: true, Interval2Hour: true, Interval4Hour: true,
	Interval6Hour: true, Interval8Hour: true, Interval12Hour: true, Interval1Day: true,
	Interval1Week: true,
}

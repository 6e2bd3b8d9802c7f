package kucoin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// Endpoint describes one REST operation as data: who may call it, the verb,
// the path and the parameters it declares. Path may hold {name} placeholders
// that Bind fills in; those values are part of the path, not the parameters.
type Endpoint struct {
	Name       string
	Visibility restapi.Visibility
	Method     restapi.Method
	Path       string
	Schema     restapi.Schema

	template string
}

// Bind returns a copy of ep with each {placeholder} in Path replaced, in
// order, by the path-escaped values. The original template is kept as the
// endpoint's metrics and log label.
func (ep Endpoint) Bind(values ...string) (Endpoint, error) {
	bound := ep
	bound.template = ep.label()
	path := ep.Path
	for _, v := range values {
		start := strings.IndexByte(path, '{')
		end := strings.IndexByte(path, '}')
		if start < 0 || end < start {
			return Endpoint{}, fmt.Errorf("%w; %s takes fewer than %d path values", ErrUnboundPath, ep.Name, len(values))
		}
		if v == "" {
			return Endpoint{}, fmt.Errorf("%w; empty value for %s in %s", ErrUnboundPath, path[start:end+1], ep.Name)
		}
		path = path[:start] + url.PathEscape(v) + path[end+1:]
	}
	if strings.ContainsAny(path, "{}") {
		return Endpoint{}, fmt.Errorf("%w; %s still has placeholders after binding %d value(s)", ErrUnboundPath, ep.Name, len(values))
	}
	bound.Path = path
	return bound, nil
}

func (ep Endpoint) label() string {
	if ep.template != "" {
		return ep.template
	}
	return ep.Path
}

func public(name string, method restapi.Method, path string, schema ...restapi.Param) Endpoint {
	return Endpoint{Name: name, Visibility: restapi.Public, Method: method, Path: path, Schema: schema}
}

func private(name string, method restapi.Method, path string, schema ...restapi.Param) Endpoint {
	return Endpoint{Name: name, Visibility: restapi.Private, Method: method, Path: path, Schema: schema}
}

var (
	req = restapi.Required
	opt = restapi.Optional
)

// #region Public Market Data endpoints

var (
	EndpointServerTime    = public("ServerTime", restapi.MethodGet, "/api/v1/timestamp")
	EndpointServiceStatus = public("ServiceStatus", restapi.MethodGet, "/api/v1/status")
	EndpointSymbols       = public("Symbols", restapi.MethodGet, "/api/v2/symbols", opt("market"))
	EndpointTicker        = public("Ticker", restapi.MethodGet, "/api/v1/market/orderbook/level1", req("symbol"))
	EndpointAllTickers    = public("AllTickers", restapi.MethodGet, "/api/v1/market/allTickers")
	EndpointStats24h      = public("Stats24h", restapi.MethodGet, "/api/v1/market/stats", req("symbol"))
	EndpointMarkets       = public("Markets", restapi.MethodGet, "/api/v1/markets")
	EndpointPartOrderBook = public("PartOrderBook", restapi.MethodGet, "/api/v1/market/orderbook/level2_{depth}", req("symbol"))
	EndpointTradeHistory  = public("TradeHistory", restapi.MethodGet, "/api/v1/market/histories", req("symbol"))
	EndpointKlines        = public("Klines", restapi.MethodGet, "/api/v1/market/candles",
		req("symbol"), req("type"), opt("startAt"), opt("endAt"))
	EndpointCurrencies   = public("Currencies", restapi.MethodGet, "/api/v3/currencies")
	EndpointCurrency     = public("Currency", restapi.MethodGet, "/api/v3/currencies/{currency}", opt("chain"))
	EndpointFiatPrices   = public("FiatPrices", restapi.MethodGet, "/api/v1/prices", opt("base"), opt("currencies").WithArrays(restapi.CommaJoin))
	EndpointBulletPublic = public("BulletPublic", restapi.MethodPost, "/api/v1/bullet-public")
)

// #endregion

// #region Private Market Data endpoints

var (
	EndpointFullOrderBook = private("FullOrderBook", restapi.MethodGet, "/api/v3/market/orderbook/level2", req("symbol"))
	EndpointBulletPrivate = private("BulletPrivate", restapi.MethodPost, "/api/v1/bullet-private")
)

// #endregion

// #region Private Account endpoints

var (
	EndpointAccounts       = private("Accounts", restapi.MethodGet, "/api/v1/accounts", opt("currency"), opt("type"))
	EndpointAccount        = private("Account", restapi.MethodGet, "/api/v1/accounts/{accountId}")
	EndpointAccountLedgers = private("AccountLedgers", restapi.MethodGet, "/api/v1/accounts/ledgers",
		opt("currency"), opt("direction"), opt("bizType"), opt("startAt"), opt("endAt"), opt("currentPage"), opt("pageSize"))
	EndpointTransferable = private("Transferable", restapi.MethodGet, "/api/v1/accounts/transferable",
		req("currency"), opt("type"), opt("tag"))
	EndpointInnerTransfer = private("InnerTransfer", restapi.MethodPost, "/api/v2/accounts/inner-transfer",
		req("clientOid"), req("currency"), req("from"), req("to"), req("amount"), opt("fromTag"), opt("toTag"))
	EndpointSubAccounts = private("SubAccounts", restapi.MethodGet, "/api/v1/sub-accounts")
)

// #endregion

// #region Private Funding endpoints

var (
	EndpointCreateDepositAddress = private("CreateDepositAddress", restapi.MethodPost, "/api/v1/deposit-addresses",
		req("currency"), opt("chain"))
	EndpointDepositAddresses = private("DepositAddresses", restapi.MethodGet, "/api/v2/deposit-addresses", req("currency"))
	EndpointDeposits         = private("Deposits", restapi.MethodGet, "/api/v1/deposits",
		opt("currency"), opt("startAt"), opt("endAt"), opt("status"), opt("currentPage"), opt("pageSize"))
	EndpointWithdrawals = private("Withdrawals", restapi.MethodGet, "/api/v1/withdrawals",
		opt("currency"), opt("startAt"), opt("endAt"), opt("status"), opt("currentPage"), opt("pageSize"))
	EndpointWithdrawalQuotas = private("WithdrawalQuotas", restapi.MethodGet, "/api/v1/withdrawals/quotas",
		req("currency"), opt("chain"))
	EndpointApplyWithdrawal = private("ApplyWithdrawal", restapi.MethodPost, "/api/v1/withdrawals",
		req("currency"), req("address"), req("amount"), opt("memo"), opt("isInner"), opt("remark"), opt("chain"), opt("feeDeductType"))
	EndpointCancelWithdrawal = private("CancelWithdrawal", restapi.MethodDelete, "/api/v1/withdrawals/{withdrawalId}")
)

// #endregion

// #region Private Trading endpoints

var (
	EndpointPlaceOrder = private("PlaceOrder", restapi.MethodPost, "/api/v1/orders",
		req("clientOid"), req("side"), req("symbol"), opt("type"), opt("remark"), opt("stp"), opt("tradeType"),
		opt("price"), opt("size"), opt("funds"), opt("timeInForce"), opt("cancelAfter"), opt("postOnly"),
		opt("hidden"), opt("iceberg"), opt("visibleSize"))
	EndpointCancelOrder            = private("CancelOrder", restapi.MethodDelete, "/api/v1/orders/{orderId}")
	EndpointCancelOrderByClientOid = private("CancelOrderByClientOid", restapi.MethodDelete, "/api/v1/order/client-order/{clientOid}")
	EndpointCancelAllOrders        = private("CancelAllOrders", restapi.MethodDelete, "/api/v1/orders", opt("symbol"), opt("tradeType"))
	EndpointOrders                 = private("Orders", restapi.MethodGet, "/api/v1/orders",
		opt("status"), opt("symbol"), opt("side"), opt("type"), opt("tradeType"), opt("startAt"), opt("endAt"),
		opt("currentPage"), opt("pageSize"))
	EndpointOrder              = private("Order", restapi.MethodGet, "/api/v1/orders/{orderId}")
	EndpointOrderByClientOid   = private("OrderByClientOid", restapi.MethodGet, "/api/v1/order/client-order/{clientOid}")
	EndpointRecentOrders       = private("RecentOrders", restapi.MethodGet, "/api/v1/limit/orders")
	EndpointFills              = private("Fills", restapi.MethodGet, "/api/v1/fills",
		opt("orderId"), opt("symbol"), opt("side"), opt("type"), opt("startAt"), opt("endAt"), opt("tradeType"),
		opt("currentPage"), opt("pageSize"))
	EndpointRecentFills = private("RecentFills", restapi.MethodGet, "/api/v1/limit/fills")
	EndpointBaseFee     = private("BaseFee", restapi.MethodGet, "/api/v1/base-fee", opt("currencyType"))
	EndpointTradeFees   = private("TradeFees", restapi.MethodGet, "/api/v1/trade-fees", req("symbols").WithArrays(restapi.CommaJoin))
)

// #endregion

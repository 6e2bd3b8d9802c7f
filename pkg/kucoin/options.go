package kucoin

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// For *Client method ListAccounts()
type ListAccountsOption func(params *restapi.Params)

// Restrict results to one currency. Defaults to all currencies if not called
func LAWithCurrency(currency string) ListAccountsOption {
	return func(params *restapi.Params) {
		params.Set("currency", currency)
	}
}

// Restrict results to one account type. Defaults to all types if not called
//
// Enum: AccountMain, AccountTrade, AccountMargin
func LAWithType(accountType string) ListAccountsOption {
	return func(params *restapi.Params) {
		params.Set("type", accountType)
	}
}

// For *Client method GetAccountLedgers()
type GetLedgersOption func(params *restapi.Params)

// Restrict results to one or more currencies, comma separated. Defaults to
// all currencies if not called
func LGWithCurrency(currency string) GetLedgersOption {
	return func(params *restapi.Params) {
		params.Set("currency", currency)
	}
}

// Restrict results to "in" or "out" entries
func LGWithDirection(direction string) GetLedgersOption {
	return func(params *restapi.Params) {
		params.Set("direction", direction)
	}
}

// Restrict results to one business type, e.g. "Transfer", "Exchange"
func LGWithBizType(bizType string) GetLedgersOption {
	return func(params *restapi.Params) {
		params.Set("bizType", bizType)
	}
}

// Restrict results to entries created in [start, end]
func LGWithTimeRange(start, end time.Time) GetLedgersOption {
	return func(params *restapi.Params) {
		params.Set("startAt", start).Set("endAt", end)
	}
}

// Request one page of results. Page numbering starts at 1
func LGWithPage(currentPage, pageSize int) GetLedgersOption {
	return func(params *restapi.Params) {
		params.Set("currentPage", currentPage).Set("pageSize", pageSize)
	}
}

// For *Client methods ListDeposits() and ListWithdrawals()
type FundingHistoryOption func(params *restapi.Params)

// Restrict results to one currency
func FHWithCurrency(currency string) FundingHistoryOption {
	return func(params *restapi.Params) {
		params.Set("currency", currency)
	}
}

// Restrict results to one status, e.g. "PROCESSING", "SUCCESS", "FAILURE"
func FHWithStatus(status string) FundingHistoryOption {
	return func(params *restapi.Params) {
		params.Set("status", status)
	}
}

// Restrict results to records created in [start, end]
func FHWithTimeRange(start, end time.Time) FundingHistoryOption {
	return func(params *restapi.Params) {
		params.Set("startAt", start).Set("endAt", end)
	}
}

// Request one page of results. Page numbering starts at 1
func FHWithPage(currentPage, pageSize int) FundingHistoryOption {
	return func(params *restapi.Params) {
		params.Set("currentPage", currentPage).Set("pageSize", pageSize)
	}
}

// For *Client method GetKlines()
type GetKlinesOption func(params *restapi.Params)

// Restrict candles to [start, end]. The endpoint takes seconds
func KLWithTimeRange(start, end time.Time) GetKlinesOption {
	return func(params *restapi.Params) {
		params.Set("startAt", start.Unix()).Set("endAt", end.Unix())
	}
}

// For *Client methods PlaceOrder(), PlaceLimitOrder() and PlaceMarketOrder()
type PlaceOrderOption func(params *restapi.Params)

// Client generated order id, at most 40 characters. Defaults to a random
// UUID if not called
func POWithClientOID(clientOid string) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("clientOid", clientOid)
	}
}

// Order remark, at most 50 characters
func POWithRemark(remark string) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("remark", remark)
	}
}

// Self trade prevention strategy. Defaults to none if not called
//
// Enum: "CN", "CO", "CB", "DC"
func POWithSTP(stp string) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("stp", stp)
	}
}

// Limit orders only. Defaults to "GTC" if not called
//
// Enum: "GTC", "GTT", "IOC", "FOK"
func POWithTimeInForce(timeInForce string) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("timeInForce", timeInForce)
	}
}

// Cancel a GTT order after the given duration, truncated to seconds
func POWithCancelAfter(d time.Duration) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("cancelAfter", int64(d/time.Second))
	}
}

// Limit orders only. Rejects the order if it would take liquidity
func POWithPostOnly() PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("postOnly", true)
	}
}

// Limit orders only. Hides the order from the order book
func POWithHidden() PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("hidden", true)
	}
}

// Limit orders only. Shows visibleSize of the order in the order book
func POWithIceberg(visibleSize decimal.Decimal) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("iceberg", true).Set("visibleSize", visibleSize)
	}
}

// Market orders only. Spend funds of the quote currency instead of a base
// size. The size set by PlaceMarketOrder is dropped
func POWithFunds(funds decimal.Decimal) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Delete("size")
		params.Set("funds", funds)
	}
}

// Defaults to "TRADE" (spot) if not called
func POWithTradeType(tradeType string) PlaceOrderOption {
	return func(params *restapi.Params) {
		params.Set("tradeType", tradeType)
	}
}

// For *Client method ListOrders()
type ListOrdersOption func(params *restapi.Params)

// Enum: "active", "done". Defaults to both if not called
func LOWithStatus(status string) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("status", status)
	}
}

func LOWithSymbol(symbol string) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("symbol", symbol)
	}
}

func LOWithSide(side string) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("side", side)
	}
}

func LOWithType(orderType string) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("type", orderType)
	}
}

// Restrict results to orders created in [start, end]
func LOWithTimeRange(start, end time.Time) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("startAt", start).Set("endAt", end)
	}
}

// Request one page of results. Page numbering starts at 1
func LOWithPage(currentPage, pageSize int) ListOrdersOption {
	return func(params *restapi.Params) {
		params.Set("currentPage", currentPage).Set("pageSize", pageSize)
	}
}

// For *Client method ListFills()
type ListFillsOption func(params *restapi.Params)

// Restrict results to the fills of one order. Other filters are ignored by
// the exchange when this is set
func LFWithOrderID(orderID string) ListFillsOption {
	return func(params *restapi.Params) {
		params.Set("orderId", orderID)
	}
}

func LFWithSymbol(symbol string) ListFillsOption {
	return func(params *restapi.Params) {
		params.Set("symbol", symbol)
	}
}

func LFWithSide(side string) ListFillsOption {
	return func(params *restapi.Params) {
		params.Set("side", side)
	}
}

// Restrict results to fills in [start, end]
func LFWithTimeRange(start, end time.Time) ListFillsOption {
	return func(params *restapi.Params) {
		params.Set("startAt", start).Set("endAt", end)
	}
}

// Request one page of results. Page numbering starts at 1
func LFWithPage(currentPage, pageSize int) ListFillsOption {
	return func(params *restapi.Params) {
		params.Set("currentPage", currentPage).Set("pageSize", pageSize)
	}
}

// For *Client method ApplyWithdrawal()
type WithdrawalOption func(params *restapi.Params)

// Address memo or tag, required by some currencies
func WDWithMemo(memo string) WithdrawalOption {
	return func(params *restapi.Params) {
		params.Set("memo", memo)
	}
}

// Chain name, e.g. "ERC20", "TRC20". Defaults to the currency's default
// chain if not called
func WDWithChain(chain string) WithdrawalOption {
	return func(params *restapi.Params) {
		params.Set("chain", chain)
	}
}

// Send as an internal KuCoin transfer
func WDWithInner() WithdrawalOption {
	return func(params *restapi.Params) {
		params.Set("isInner", true)
	}
}

func WDWithRemark(remark string) WithdrawalOption {
	return func(params *restapi.Params) {
		params.Set("remark", remark)
	}
}

// Enum: "INTERNAL" (fee taken from the balance), "EXTERNAL" (fee taken from
// the amount)
func WDWithFeeDeductType(feeDeductType string) WithdrawalOption {
	return func(params *restapi.Params) {
		params.Set("feeDeductType", feeDeductType)
	}
}

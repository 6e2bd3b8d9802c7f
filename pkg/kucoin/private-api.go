package kucoin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

// NewClientOID returns a random id for the clientOid parameter of orders and
// transfers.
func NewClientOID() string {
	return uuid.NewString()
}

// #region Private Market Data endpoints

// Calls KuCoin API private market data "orderbook/level2" endpoint. Gets the
// full aggregated book of symbol.
func (kc *Client) GetFullOrderBook(ctx context.Context, symbol string) (*OrderBook, error) {
	book := &OrderBook{}
	err := kc.call(ctx, EndpointFullOrderBook, restapi.NewParams().Set("symbol", symbol), book)
	if err != nil {
		return nil, fmt.Errorf("error calling GetFullOrderBook() | %w", err)
	}
	return book, nil
}

// Calls KuCoin API "bullet-private" endpoint. Gets a token and the instance
// servers for the private websocket feed.
func (kc *Client) GetBulletPrivate(ctx context.Context) (*BulletToken, error) {
	token := &BulletToken{}
	err := kc.call(ctx, EndpointBulletPrivate, nil, token)
	if err != nil {
		return nil, fmt.Errorf("error calling GetBulletPrivate() | %w", err)
	}
	return token, nil
}

// #endregion

// #region Private Account endpoints

// Calls KuCoin API private account "accounts" endpoint. Accepts functional
// options LAWithCurrency and LAWithType.
//
// # Example Usage:
//
//	accounts, err := kc.ListAccounts(ctx, kucoin.LAWithType(kucoin.AccountTrade))
func (kc *Client) ListAccounts(ctx context.Context, options ...ListAccountsOption) ([]Account, error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	var accounts []Account
	err := kc.call(ctx, EndpointAccounts, params, &accounts)
	if err != nil {
		return nil, fmt.Errorf("error calling ListAccounts() | %w", err)
	}
	return accounts, nil
}

// Calls KuCoin API private account "accounts/{accountId}" endpoint. The
// returned Account has only Currency, Balance, Available and Holds set.
func (kc *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	ep, err := EndpointAccount.Bind(accountID)
	if err != nil {
		return nil, fmt.Errorf("error calling GetAccount() | %w", err)
	}
	account := &Account{}
	err = kc.call(ctx, ep, nil, account)
	if err != nil {
		return nil, fmt.Errorf("error calling GetAccount() | %w", err)
	}
	account.ID = accountID
	return account, nil
}

// Calls KuCoin API private account "accounts/ledgers" endpoint. Accepts
// functional options LGWithCurrency, LGWithDirection, LGWithBizType,
// LGWithTimeRange and LGWithPage.
func (kc *Client) GetAccountLedgers(ctx context.Context, options ...GetLedgersOption) (*Paginated[Ledger], error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	ledgers := &Paginated[Ledger]{}
	err := kc.call(ctx, EndpointAccountLedgers, params, ledgers)
	if err != nil {
		return nil, fmt.Errorf("error calling GetAccountLedgers() | %w", err)
	}
	return ledgers, nil
}

// Calls KuCoin API private account "accounts/transferable" endpoint. Gets the
// amount of currency that can be moved out of an account. accountType is
// optional and defaults to the main account.
//
// # Example Usage:
//
//	t, err := kc.GetTransferable(ctx, "BTC")
//	log.Println(t.Transferable)
func (kc *Client) GetTransferable(ctx context.Context, currency string, accountType ...string) (*Transferable, error) {
	params := restapi.NewParams().Set("currency", currency)
	if len(accountType) > 0 {
		params.Set("type", accountType[0])
	}
	transferable := &Transferable{}
	err := kc.call(ctx, EndpointTransferable, params, transferable)
	if err != nil {
		return nil, fmt.Errorf("error calling GetTransferable() | %w", err)
	}
	return transferable, nil
}

// Calls KuCoin API private account "accounts/inner-transfer" endpoint. Moves
// amount of currency between two accounts of the same user and returns the
// transfer's order id.
//
// Enum - 'from', 'to': AccountMain, AccountTrade, AccountMargin
func (kc *Client) InnerTransfer(ctx context.Context, currency, from, to string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("error calling InnerTransfer() | %w; amount %s", ErrInvalidArg, amount)
	}
	params := restapi.NewParams().
		Set("clientOid", NewClientOID()).
		Set("currency", currency).
		Set("from", from).
		Set("to", to).
		Set("amount", amount)
	resp := &orderID{}
	err := kc.call(ctx, EndpointInnerTransfer, params, resp)
	if err != nil {
		return "", fmt.Errorf("error calling InnerTransfer() | %w", err)
	}
	return resp.OrderID, nil
}

// Calls KuCoin API private account "sub-accounts" endpoint.
func (kc *Client) ListSubAccounts(ctx context.Context) ([]SubAccount, error) {
	var subs []SubAccount
	err := kc.call(ctx, EndpointSubAccounts, nil, &subs)
	if err != nil {
		return nil, fmt.Errorf("error calling ListSubAccounts() | %w", err)
	}
	return subs, nil
}

// #endregion

// #region Private Funding endpoints

// Calls KuCoin API private funding "deposit-addresses" endpoint with a POST.
// Creates a deposit address for currency on chain, or on the currency's
// default chain if chain is empty.
func (kc *Client) CreateDepositAddress(ctx context.Context, currency, chain string) (*DepositAddress, error) {
	params := restapi.NewParams().Set("currency", currency)
	if chain != "" {
		params.Set("chain", chain)
	}
	addr := &DepositAddress{}
	err := kc.call(ctx, EndpointCreateDepositAddress, params, addr)
	if err != nil {
		return nil, fmt.Errorf("error calling CreateDepositAddress() | %w", err)
	}
	return addr, nil
}

// Calls KuCoin API private funding "deposit-addresses" endpoint. Gets every
// deposit address of currency, one per chain.
func (kc *Client) ListDepositAddresses(ctx context.Context, currency string) ([]DepositAddress, error) {
	var addrs []DepositAddress
	err := kc.call(ctx, EndpointDepositAddresses, restapi.NewParams().Set("currency", currency), &addrs)
	if err != nil {
		return nil, fmt.Errorf("error calling ListDepositAddresses() | %w", err)
	}
	return addrs, nil
}

// Calls KuCoin API private funding "deposits" endpoint. Accepts functional
// options FHWithCurrency, FHWithStatus, FHWithTimeRange and FHWithPage.
func (kc *Client) ListDeposits(ctx context.Context, options ...FundingHistoryOption) (*Paginated[Deposit], error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	deposits := &Paginated[Deposit]{}
	err := kc.call(ctx, EndpointDeposits, params, deposits)
	if err != nil {
		return nil, fmt.Errorf("error calling ListDeposits() | %w", err)
	}
	return deposits, nil
}

// Calls KuCoin API private funding "withdrawals" endpoint. Accepts functional
// options FHWithCurrency, FHWithStatus, FHWithTimeRange and FHWithPage.
func (kc *Client) ListWithdrawals(ctx context.Context, options ...FundingHistoryOption) (*Paginated[Withdrawal], error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	withdrawals := &Paginated[Withdrawal]{}
	err := kc.call(ctx, EndpointWithdrawals, params, withdrawals)
	if err != nil {
		return nil, fmt.Errorf("error calling ListWithdrawals() | %w", err)
	}
	return withdrawals, nil
}

// Calls KuCoin API private funding "withdrawals/quotas" endpoint. chain is
// optional.
func (kc *Client) GetWithdrawalQuotas(ctx context.Context, currency string, chain ...string) (*WithdrawalQuotas, error) {
	params := restapi.NewParams().Set("currency", currency)
	if len(chain) > 0 {
		params.Set("chain", chain[0])
	}
	quotas := &WithdrawalQuotas{}
	err := kc.call(ctx, EndpointWithdrawalQuotas, params, quotas)
	if err != nil {
		return nil, fmt.Errorf("error calling GetWithdrawalQuotas() | %w", err)
	}
	return quotas, nil
}

// Calls KuCoin API private funding "withdrawals" endpoint with a POST. Sends
// amount of currency to address and returns the withdrawal id. Accepts
// functional options WDWithMemo, WDWithChain, WDWithInner, WDWithRemark and
// WDWithFeeDeductType.
func (kc *Client) ApplyWithdrawal(ctx context.Context, currency, address string, amount decimal.Decimal, options ...WithdrawalOption) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("error calling ApplyWithdrawal() | %w; amount %s", ErrInvalidArg, amount)
	}
	params := restapi.NewParams().
		Set("currency", currency).
		Set("address", address).
		Set("amount", amount)
	for _, option := range options {
		option(params)
	}
	resp := &struct {
		WithdrawalID string `json:"withdrawalId"`
	}{}
	err := kc.call(ctx, EndpointApplyWithdrawal, params, resp)
	if err != nil {
		return "", fmt.Errorf("error calling ApplyWithdrawal() | %w", err)
	}
	return resp.WithdrawalID, nil
}

// Calls KuCoin API private funding "withdrawals/{withdrawalId}" endpoint with
// a DELETE. Only withdrawals still in PROCESSING can be cancelled.
func (kc *Client) CancelWithdrawal(ctx context.Context, withdrawalID string) error {
	ep, err := EndpointCancelWithdrawal.Bind(withdrawalID)
	if err != nil {
		return fmt.Errorf("error calling CancelWithdrawal() | %w", err)
	}
	err = kc.call(ctx, ep, nil, nil)
	if err != nil {
		return fmt.Errorf("error calling CancelWithdrawal() | %w", err)
	}
	return nil
}

// #endregion

// #region Private Trading endpoints

// Calls KuCoin API private trading "orders" endpoint with a POST. Places an
// order of orderType on symbol and returns its order id. A clientOid is
// generated unless POWithClientOID is passed.
//
// PlaceLimitOrder and PlaceMarketOrder cover the common cases; call PlaceOrder
// directly to pass price, size or funds as options of your own.
//
// Enum - 'side': Buy, Sell
//
// Enum - 'orderType': LimitOrder, MarketOrder
func (kc *Client) PlaceOrder(ctx context.Context, side, symbol, orderType string, options ...PlaceOrderOption) (string, error) {
	if side != Buy && side != Sell {
		return "", fmt.Errorf("error calling PlaceOrder() | %w; side %q", ErrInvalidArg, side)
	}
	params := restapi.NewParams().
		Set("clientOid", NewClientOID()).
		Set("side", side).
		Set("symbol", symbol).
		Set("type", orderType)
	for _, option := range options {
		option(params)
	}
	resp := &orderID{}
	err := kc.call(ctx, EndpointPlaceOrder, params, resp)
	if err != nil {
		return "", fmt.Errorf("error calling PlaceOrder() | %w", err)
	}
	return resp.OrderID, nil
}

// Places a limit order for size at price. Accepts the same functional options
// as PlaceOrder.
//
// # Example Usage:
//
//	id, err := kc.PlaceLimitOrder(ctx, kucoin.Buy, "BTC-USDT",
//		decimal.RequireFromString("30000"), decimal.RequireFromString("0.001"),
//		kucoin.POWithPostOnly())
func (kc *Client) PlaceLimitOrder(ctx context.Context, side, symbol string, price, size decimal.Decimal, options ...PlaceOrderOption) (string, error) {
	if !price.IsPositive() || !size.IsPositive() {
		return "", fmt.Errorf("error calling PlaceLimitOrder() | %w; price %s size %s", ErrInvalidArg, price, size)
	}
	set := func(params *restapi.Params) {
		params.Set("price", price).Set("size", size)
	}
	return kc.PlaceOrder(ctx, side, symbol, LimitOrder, append([]PlaceOrderOption{set}, options...)...)
}

// Places a market order for size of the base currency. Pass POWithFunds to
// spend an amount of the quote currency instead.
func (kc *Client) PlaceMarketOrder(ctx context.Context, side, symbol string, size decimal.Decimal, options ...PlaceOrderOption) (string, error) {
	set := func(params *restapi.Params) {
		params.Set("size", size)
	}
	return kc.PlaceOrder(ctx, side, symbol, MarketOrder, append([]PlaceOrderOption{set}, options...)...)
}

// Calls KuCoin API private trading "orders/{orderId}" endpoint with a DELETE.
// Returns the ids of the cancelled orders.
func (kc *Client) CancelOrder(ctx context.Context, orderID string) ([]string, error) {
	ep, err := EndpointCancelOrder.Bind(orderID)
	if err != nil {
		return nil, fmt.Errorf("error calling CancelOrder() | %w", err)
	}
	resp := &cancelledOrders{}
	err = kc.call(ctx, ep, nil, resp)
	if err != nil {
		return nil, fmt.Errorf("error calling CancelOrder() | %w", err)
	}
	return resp.CancelledOrderIDs, nil
}

// Calls KuCoin API private trading "order/client-order/{clientOid}" endpoint
// with a DELETE. Returns the exchange's id of the cancelled order.
func (kc *Client) CancelOrderByClientOID(ctx context.Context, clientOid string) (string, error) {
	ep, err := EndpointCancelOrderByClientOid.Bind(clientOid)
	if err != nil {
		return "", fmt.Errorf("error calling CancelOrderByClientOID() | %w", err)
	}
	resp := &cancelledClientOrder{}
	err = kc.call(ctx, ep, nil, resp)
	if err != nil {
		return "", fmt.Errorf("error calling CancelOrderByClientOID() | %w", err)
	}
	return resp.CancelledOrderID, nil
}

// Calls KuCoin API private trading "orders" endpoint with a DELETE. Cancels
// every open order, or only those of symbol if symbol is not empty.
func (kc *Client) CancelAllOrders(ctx context.Context, symbol string) ([]string, error) {
	params := restapi.NewParams()
	if symbol != "" {
		params.Set("symbol", symbol)
	}
	resp := &cancelledOrders{}
	err := kc.call(ctx, EndpointCancelAllOrders, params, resp)
	if err != nil {
		return nil, fmt.Errorf("error calling CancelAllOrders() | %w", err)
	}
	return resp.CancelledOrderIDs, nil
}

// Calls KuCoin API private trading "orders" endpoint. Accepts functional
// options LOWithStatus, LOWithSymbol, LOWithSide, LOWithType, LOWithTimeRange
// and LOWithPage.
//
// # Example Usage:
//
//	open, err := kc.ListOrders(ctx, kucoin.LOWithStatus("active"), kucoin.LOWithSymbol("BTC-USDT"))
func (kc *Client) ListOrders(ctx context.Context, options ...ListOrdersOption) (*Paginated[Order], error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	orders := &Paginated[Order]{}
	err := kc.call(ctx, EndpointOrders, params, orders)
	if err != nil {
		return nil, fmt.Errorf("error calling ListOrders() | %w", err)
	}
	return orders, nil
}

// Calls KuCoin API private trading "orders/{orderId}" endpoint.
func (kc *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	ep, err := EndpointOrder.Bind(orderID)
	if err != nil {
		return nil, fmt.Errorf("error calling GetOrder() | %w", err)
	}
	order := &Order{}
	err = kc.call(ctx, ep, nil, order)
	if err != nil {
		return nil, fmt.Errorf("error calling GetOrder() | %w", err)
	}
	return order, nil
}

// Calls KuCoin API private trading "order/client-order/{clientOid}" endpoint.
func (kc *Client) GetOrderByClientOID(ctx context.Context, clientOid string) (*Order, error) {
	ep, err := EndpointOrderByClientOid.Bind(clientOid)
	if err != nil {
		return nil, fmt.Errorf("error calling GetOrderByClientOID() | %w", err)
	}
	order := &Order{}
	err = kc.call(ctx, ep, nil, order)
	if err != nil {
		return nil, fmt.Errorf("error calling GetOrderByClientOID() | %w", err)
	}
	return order, nil
}

// Calls KuCoin API private trading "limit/orders" endpoint. Gets the orders
// of the last 24 hours.
func (kc *Client) ListRecentOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := kc.call(ctx, EndpointRecentOrders, nil, &orders)
	if err != nil {
		return nil, fmt.Errorf("error calling ListRecentOrders() | %w", err)
	}
	return orders, nil
}

// Calls KuCoin API private trading "fills" endpoint. Accepts functional
// options LFWithOrderID, LFWithSymbol, LFWithSide, LFWithTimeRange and
// LFWithPage.
func (kc *Client) ListFills(ctx context.Context, options ...ListFillsOption) (*Paginated[Fill], error) {
	params := restapi.NewParams()
	for _, option := range options {
		option(params)
	}
	fills := &Paginated[Fill]{}
	err := kc.call(ctx, EndpointFills, params, fills)
	if err != nil {
		return nil, fmt.Errorf("error calling ListFills() | %w", err)
	}
	return fills, nil
}

// Calls KuCoin API private trading "limit/fills" endpoint. Gets the fills of
// the last 24 hours.
func (kc *Client) ListRecentFills(ctx context.Context) ([]Fill, error) {
	var fills []Fill
	err := kc.call(ctx, EndpointRecentFills, nil, &fills)
	if err != nil {
		return nil, fmt.Errorf("error calling ListRecentFills() | %w", err)
	}
	return fills, nil
}

// Calls KuCoin API private trading "base-fee" endpoint. Gets the user's base
// fee rates.
func (kc *Client) GetBaseFee(ctx context.Context) (*BaseFee, error) {
	fee := &BaseFee{}
	err := kc.call(ctx, EndpointBaseFee, nil, fee)
	if err != nil {
		return nil, fmt.Errorf("error calling GetBaseFee() | %w", err)
	}
	return fee, nil
}

// Calls KuCoin API private trading "trade-fees" endpoint. Gets the actual fee
// rates of up to 10 symbols. The list is rendered according to the client's
// array encoding.
func (kc *Client) GetTradeFees(ctx context.Context, symbols ...string) ([]TradeFee, error) {
	if len(symbols) == 0 || len(symbols) > 10 {
		return nil, fmt.Errorf("error calling GetTradeFees() | %w; %d symbols, expected 1 to 10", ErrInvalidArg, len(symbols))
	}
	var fees []TradeFee
	err := kc.call(ctx, EndpointTradeFees, restapi.NewParams().Set("symbols", symbols), &fees)
	if err != nil {
		return nil, fmt.Errorf("error calling GetTradeFees() | %w", err)
	}
	return fees, nil
}

// #endregion

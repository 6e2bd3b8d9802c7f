package kucoin

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// envelope is the outer structure of every response body.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Paginated wraps list endpoints that page their results.
type Paginated[T any] struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalNum    int `json:"totalNum"`
	TotalPage   int `json:"totalPage"`
	Items       []T `json:"items"`
}

// #region Public Market Data structs

type ServiceStatus struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

type Symbol struct {
	Symbol          string          `json:"symbol"`
	Name            string          `json:"name"`
	BaseCurrency    string          `json:"baseCurrency"`
	QuoteCurrency   string          `json:"quoteCurrency"`
	FeeCurrency     string          `json:"feeCurrency"`
	Market          string          `json:"market"`
	BaseMinSize     decimal.Decimal `json:"baseMinSize"`
	QuoteMinSize    decimal.Decimal `json:"quoteMinSize"`
	BaseMaxSize     decimal.Decimal `json:"baseMaxSize"`
	QuoteMaxSize    decimal.Decimal `json:"quoteMaxSize"`
	BaseIncrement   decimal.Decimal `json:"baseIncrement"`
	QuoteIncrement  decimal.Decimal `json:"quoteIncrement"`
	PriceIncrement  decimal.Decimal `json:"priceIncrement"`
	PriceLimitRate  decimal.Decimal `json:"priceLimitRate"`
	MinFunds        decimal.Decimal `json:"minFunds"`
	IsMarginEnabled bool            `json:"isMarginEnabled"`
	EnableTrading   bool            `json:"enableTrading"`
}

// Ticker is the level 1 snapshot of one symbol.
type Ticker struct {
	Sequence    string          `json:"sequence"`
	Price       decimal.Decimal `json:"price"`
	Size        decimal.Decimal `json:"size"`
	BestBid     decimal.Decimal `json:"bestBid"`
	BestBidSize decimal.Decimal `json:"bestBidSize"`
	BestAsk     decimal.Decimal `json:"bestAsk"`
	BestAskSize decimal.Decimal `json:"bestAskSize"`
	Time        int64           `json:"time"`
}

type AllTickers struct {
	Time    int64          `json:"time"`
	Tickers []MarketTicker `json:"ticker"`
}

type MarketTicker struct {
	Symbol       string          `json:"symbol"`
	SymbolName   string          `json:"symbolName"`
	Buy          decimal.Decimal `json:"buy"`
	Sell         decimal.Decimal `json:"sell"`
	ChangeRate   decimal.Decimal `json:"changeRate"`
	ChangePrice  decimal.Decimal `json:"changePrice"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Vol          decimal.Decimal `json:"vol"`
	VolValue     decimal.Decimal `json:"volValue"`
	Last         decimal.Decimal `json:"last"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TakerFeeRate decimal.Decimal `json:"takerFeeRate"`
	MakerFeeRate decimal.Decimal `json:"makerFeeRate"`
}

type Stats24h struct {
	Time         int64           `json:"time"`
	Symbol       string          `json:"symbol"`
	Buy          decimal.Decimal `json:"buy"`
	Sell         decimal.Decimal `json:"sell"`
	ChangeRate   decimal.Decimal `json:"changeRate"`
	ChangePrice  decimal.Decimal `json:"changePrice"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Vol          decimal.Decimal `json:"vol"`
	VolValue     decimal.Decimal `json:"volValue"`
	Last         decimal.Decimal `json:"last"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TakerFeeRate decimal.Decimal `json:"takerFeeRate"`
	MakerFeeRate decimal.Decimal `json:"makerFeeRate"`
}

type OrderBook struct {
	Sequence string      `json:"sequence"`
	Time     int64       `json:"time"`
	Bids     []BookEntry `json:"bids"`
	Asks     []BookEntry `json:"asks"`
}

// BookEntry is one ["price","size"] level.
type BookEntry struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

func (be *BookEntry) UnmarshalJSON(data []byte) error {
	var v []string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("error unmarshalling book entry | %w", err)
	}
	if len(v) < 2 {
		return fmt.Errorf("book entry has %d fields; expected 2", len(v))
	}
	var err error
	if be.Price, err = decimal.NewFromString(v[0]); err != nil {
		return fmt.Errorf("error parsing book entry price | %w", err)
	}
	if be.Size, err = decimal.NewFromString(v[1]); err != nil {
		return fmt.Errorf("error parsing book entry size | %w", err)
	}
	return nil
}

type Trade struct {
	Sequence string          `json:"sequence"`
	Price    decimal.Decimal `json:"price"`
	Size     decimal.Decimal `json:"size"`
	Side     string          `json:"side"`
	Time     int64           `json:"time"` // nanoseconds
}

// Kline is one candle. The exchange sends it as
// [time, open, close, high, low, volume, turnover], all strings, with time in
// seconds.
type Kline struct {
	Time     int64
	Open     decimal.Decimal
	Close    decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Volume   decimal.Decimal
	Turnover decimal.Decimal
}

func (k *Kline) UnmarshalJSON(data []byte) error {
	var v []string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("error unmarshalling kline | %w", err)
	}
	if len(v) < 7 {
		return fmt.Errorf("kline has %d fields; expected 7", len(v))
	}
	t, err := strconv.ParseInt(v[0], 10, 64)
	if err != nil {
		return fmt.Errorf("error parsing kline time | %w", err)
	}
	k.Time = t
	fields := []*decimal.Decimal{&k.Open, &k.Close, &k.High, &k.Low, &k.Volume, &k.Turnover}
	for i, f := range fields {
		if *f, err = decimal.NewFromString(v[i+1]); err != nil {
			return fmt.Errorf("error parsing kline field %d | %w", i+1, err)
		}
	}
	return nil
}

type Currency struct {
	Currency        string  `json:"currency"`
	Name            string  `json:"name"`
	FullName        string  `json:"fullName"`
	Precision       int     `json:"precision"`
	Confirms        int     `json:"confirms"`
	ContractAddress string  `json:"contractAddress"`
	IsMarginEnabled bool    `json:"isMarginEnabled"`
	IsDebitEnabled  bool    `json:"isDebitEnabled"`
	Chains          []Chain `json:"chains"`
}

type Chain struct {
	ChainName         string          `json:"chainName"`
	Chain             string          `json:"chain"`
	WithdrawalMinSize decimal.Decimal `json:"withdrawalMinSize"`
	WithdrawalMinFee  decimal.Decimal `json:"withdrawalMinFee"`
	IsWithdrawEnabled bool            `json:"isWithdrawEnabled"`
	IsDepositEnabled  bool            `json:"isDepositEnabled"`
	Confirms          int             `json:"confirms"`
	ContractAddress   string          `json:"contractAddress"`
}

// BulletToken is the connection token returned by the bullet endpoints. Use
// InstanceServers[i].Endpoint with Token to open a websocket feed.
type BulletToken struct {
	Token           string           `json:"token"`
	InstanceServers []InstanceServer `json:"instanceServers"`
}

type InstanceServer struct {
	Endpoint     string `json:"endpoint"`
	Encrypt      bool   `json:"encrypt"`
	Protocol     string `json:"protocol"`
	PingInterval int64  `json:"pingInterval"` // milliseconds
	PingTimeout  int64  `json:"pingTimeout"`  // milliseconds
}

// #endregion

// #region Private Account Data structs

type Account struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Available decimal.Decimal `json:"available"`
	Holds     decimal.Decimal `json:"holds"`
}

type Ledger struct {
	ID          string          `json:"id"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Balance     decimal.Decimal `json:"balance"`
	AccountType string          `json:"accountType"`
	BizType     string          `json:"bizType"`
	Direction   string          `json:"direction"`
	CreatedAt   int64           `json:"createdAt"`
	Context     string          `json:"context"`
}

type Transferable struct {
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	Available    decimal.Decimal `json:"available"`
	Holds        decimal.Decimal `json:"holds"`
	Transferable decimal.Decimal `json:"transferable"`
}

type SubAccount struct {
	UserID  string `json:"userId"`
	UID     int64  `json:"uid"`
	SubName string `json:"subName"`
	Type    int    `json:"type"`
	Remarks string `json:"remarks"`
}

// #endregion

// #region Private Funding Data structs

type DepositAddress struct {
	Address         string `json:"address"`
	Memo            string `json:"memo"`
	Chain           string `json:"chain"`
	ContractAddress string `json:"contractAddress"`
}

type Deposit struct {
	Currency   string          `json:"currency"`
	Chain      string          `json:"chain"`
	Address    string          `json:"address"`
	Memo       string          `json:"memo"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	IsInner    bool            `json:"isInner"`
	WalletTxID string          `json:"walletTxId"`
	Status     string          `json:"status"`
	Remark     string          `json:"remark"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

type Withdrawal struct {
	ID         string          `json:"id"`
	Currency   string          `json:"currency"`
	Chain      string          `json:"chain"`
	Address    string          `json:"address"`
	Memo       string          `json:"memo"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	IsInner    bool            `json:"isInner"`
	WalletTxID string          `json:"walletTxId"`
	Status     string          `json:"status"`
	Remark     string          `json:"remark"`
	CreatedAt  int64           `json:"createdAt"`
	UpdatedAt  int64           `json:"updatedAt"`
}

type WithdrawalQuotas struct {
	Currency            string          `json:"currency"`
	Chain               string          `json:"chain"`
	LimitBTCAmount      decimal.Decimal `json:"limitBTCAmount"`
	UsedBTCAmount       decimal.Decimal `json:"usedBTCAmount"`
	RemainAmount        decimal.Decimal `json:"remainAmount"`
	AvailableAmount     decimal.Decimal `json:"availableAmount"`
	WithdrawMinFee      decimal.Decimal `json:"withdrawMinFee"`
	InnerWithdrawMinFee decimal.Decimal `json:"innerWithdrawMinFee"`
	WithdrawMinSize     decimal.Decimal `json:"withdrawMinSize"`
	IsWithdrawEnabled   bool            `json:"isWithdrawEnabled"`
	Precision           int             `json:"precision"`
}

// #endregion

// #region Private Trading Data structs

type Order struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	OpType        string          `json:"opType"`
	Type          string          `json:"type"`
	Side          string          `json:"side"`
	Price         decimal.Decimal `json:"price"`
	Size          decimal.Decimal `json:"size"`
	Funds         decimal.Decimal `json:"funds"`
	DealFunds     decimal.Decimal `json:"dealFunds"`
	DealSize      decimal.Decimal `json:"dealSize"`
	Fee           decimal.Decimal `json:"fee"`
	FeeCurrency   string          `json:"feeCurrency"`
	Stp           string          `json:"stp"`
	Stop          string          `json:"stop"`
	StopTriggered bool            `json:"stopTriggered"`
	StopPrice     decimal.Decimal `json:"stopPrice"`
	TimeInForce   string          `json:"timeInForce"`
	PostOnly      bool            `json:"postOnly"`
	Hidden        bool            `json:"hidden"`
	Iceberg       bool            `json:"iceberg"`
	VisibleSize   decimal.Decimal `json:"visibleSize"`
	CancelAfter   int64           `json:"cancelAfter"`
	Channel       string          `json:"channel"`
	ClientOid     string          `json:"clientOid"`
	Remark        string          `json:"remark"`
	Tags          string          `json:"tags"`
	IsActive      bool            `json:"isActive"`
	CancelExist   bool            `json:"cancelExist"`
	CreatedAt     int64           `json:"createdAt"`
	TradeType     string          `json:"tradeType"`
}

type Fill struct {
	Symbol         string          `json:"symbol"`
	TradeID        string          `json:"tradeId"`
	OrderID        string          `json:"orderId"`
	CounterOrderID string          `json:"counterOrderId"`
	Side           string          `json:"side"`
	Liquidity      string          `json:"liquidity"`
	ForceTaker     bool            `json:"forceTaker"`
	Price          decimal.Decimal `json:"price"`
	Size           decimal.Decimal `json:"size"`
	Funds          decimal.Decimal `json:"funds"`
	Fee            decimal.Decimal `json:"fee"`
	FeeRate        decimal.Decimal `json:"feeRate"`
	FeeCurrency    string          `json:"feeCurrency"`
	Stop           string          `json:"stop"`
	Type           string          `json:"type"`
	CreatedAt      int64           `json:"createdAt"`
	TradeType      string          `json:"tradeType"`
}

type BaseFee struct {
	TakerFeeRate decimal.Decimal `json:"takerFeeRate"`
	MakerFeeRate decimal.Decimal `json:"makerFeeRate"`
}

type TradeFee struct {
	Symbol       string          `json:"symbol"`
	TakerFeeRate decimal.Decimal `json:"takerFeeRate"`
	MakerFeeRate decimal.Decimal `json:"makerFeeRate"`
}

type cancelledOrders struct {
	CancelledOrderIDs []string `json:"cancelledOrderIds"`
}

type cancelledClientOrder struct {
	CancelledOrderID string `json:"cancelledOrderId"`
	ClientOid        string `json:"clientOid"`
}

type orderID struct {
	OrderID string `json:"orderId"`
}

// #endregion

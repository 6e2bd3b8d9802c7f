package kucoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readysetliqd/kucoin-library-go/pkg/restapi"
)

func TestEndpointBind(t *testing.T) {
	tests := []struct {
		name     string
		ep       Endpoint
		values   []string
		wantPath string
		wantErr  bool
	}{
		{"single placeholder", EndpointOrder, []string{"5bd6e9286d99522a52e458de"}, "/api/v1/orders/5bd6e9286d99522a52e458de", false},
		{"placeholder inside segment", EndpointPartOrderBook, []string{"100"}, "/api/v1/market/orderbook/level2_100", false},
		{"value is path escaped", EndpointOrderByClientOid, []string{"a/b c"}, "/api/v1/order/client-order/a%2Fb%20c", false},
		{"missing value", EndpointOrder, nil, "", true},
		{"empty value", EndpointOrder, []string{""}, "", true},
		{"too many values", EndpointOrder, []string{"a", "b"}, "", true},
		{"no placeholders", EndpointTicker, []string{"x"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ep.Bind(tt.values...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnboundPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.ep.Path, got.label(), "label keeps the template")
			assert.Equal(t, tt.ep.Method, got.Method)
			assert.Equal(t, tt.ep.Visibility, got.Visibility)
		})
	}
}

func TestEndpointTable(t *testing.T) {
	all := []Endpoint{
		EndpointServerTime, EndpointServiceStatus, EndpointSymbols, EndpointTicker, EndpointAllTickers,
		EndpointStats24h, EndpointMarkets, EndpointPartOrderBook, EndpointTradeHistory, EndpointKlines,
		EndpointCurrencies, EndpointCurrency, EndpointFiatPrices, EndpointBulletPublic,
		EndpointFullOrderBook, EndpointBulletPrivate,
		EndpointAccounts, EndpointAccount, EndpointAccountLedgers, EndpointTransferable, EndpointInnerTransfer,
		EndpointSubAccounts,
		EndpointCreateDepositAddress, EndpointDepositAddresses, EndpointDeposits, EndpointWithdrawals,
		EndpointWithdrawalQuotas, EndpointApplyWithdrawal, EndpointCancelWithdrawal,
		EndpointPlaceOrder, EndpointCancelOrder, EndpointCancelOrderByClientOid, EndpointCancelAllOrders,
		EndpointOrders, EndpointOrder, EndpointOrderByClientOid, EndpointRecentOrders, EndpointFills,
		EndpointRecentFills, EndpointBaseFee, EndpointTradeFees,
	}
	names := make(map[string]bool, len(all))
	for _, ep := range all {
		assert.NotEmpty(t, ep.Name)
		assert.False(t, names[ep.Name], "duplicate endpoint name %s", ep.Name)
		names[ep.Name] = true
		assert.True(t, ep.Method.Supported(), "%s uses %s", ep.Name, ep.Method)
		assert.Regexp(t, `^/api/v[1-3]/`, ep.Path)

		seen := make(map[string]bool)
		for _, p := range ep.Schema {
			assert.False(t, seen[p.Key], "%s declares %s twice", ep.Name, p.Key)
			seen[p.Key] = true
		}
	}

	assert.Equal(t, restapi.Public, EndpointTicker.Visibility)
	assert.Equal(t, restapi.Private, EndpointTransferable.Visibility)
	assert.Equal(t, restapi.Schema{restapi.Required("currency"), restapi.Optional("type"), restapi.Optional("tag")}, EndpointTransferable.Schema)
	assert.Equal(t, restapi.Schema{restapi.Required("symbols").WithArrays(restapi.CommaJoin)}, EndpointTradeFees.Schema)
	assert.Equal(t, restapi.Schema{restapi.Optional("base"), restapi.Optional("currencies").WithArrays(restapi.CommaJoin)}, EndpointFiatPrices.Schema)
}

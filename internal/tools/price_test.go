package tools

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etherdeck/eth-trading-mcp/internal/eth"
)

func execPrice(t *testing.T, tool *PriceTool, args any) priceResult {
	t.Helper()
	out, err := tool.Execute(context.Background(), mustArgs(t, args))
	require.NoError(t, err)
	res, ok := out.(priceResult)
	require.True(t, ok)
	return res
}

func TestPriceInUSD(t *testing.T) {
	// 1 UNI (10^18 base in) quotes 10 USDC (10^7 base out, 6 decimals).
	router := eth.NewMockRouter().WithAmountOut(uniAddr, usdcAddr, big.NewInt(10_000_000))
	tool := NewPriceTool(router)

	res := execPrice(t, tool, map[string]any{
		"token_address":  uniAddr.Hex(),
		"quote_currency": "USD",
	})

	assert.Equal(t, uniAddr.Hex(), res.TokenAddress)
	assert.Equal(t, "10", res.Price)
	assert.Equal(t, "USD", res.QuoteCurrency)
}

func TestPriceInETH(t *testing.T) {
	// 1 UNI quotes 0.005 WETH.
	out, _ := new(big.Int).SetString("5000000000000000", 10)
	router := eth.NewMockRouter().WithAmountOut(uniAddr, wethAddr, out)
	tool := NewPriceTool(router)

	res := execPrice(t, tool, map[string]any{
		"token_address":  uniAddr.Hex(),
		"quote_currency": "eth",
	})

	assert.Equal(t, "0.005", res.Price)
	// Echoed as supplied, not normalized.
	assert.Equal(t, "eth", res.QuoteCurrency)
}

func TestPriceDefaultsToUSD(t *testing.T) {
	router := eth.NewMockRouter().WithAmountOut(uniAddr, usdcAddr, big.NewInt(10_000_000))
	tool := NewPriceTool(router)

	res := execPrice(t, tool, map[string]any{"token_address": uniAddr.Hex()})

	assert.Equal(t, "USD", res.QuoteCurrency)
	assert.Equal(t, "10", res.Price)
}

func TestPriceZeroQuoteIsZero(t *testing.T) {
	router := eth.NewMockRouter().WithAmountOut(uniAddr, usdcAddr, big.NewInt(0))
	tool := NewPriceTool(router)

	res := execPrice(t, tool, map[string]any{"token_address": uniAddr.Hex()})

	assert.Equal(t, "0", res.Price)
}

func TestPriceBySymbol(t *testing.T) {
	router := eth.NewMockRouter().WithAmountOut(uniAddr, usdcAddr, big.NewInt(10_000_000))
	tool := NewPriceTool(router)

	res := execPrice(t, tool, map[string]any{"token_symbol": "uni"})

	// Symbol lookups resolve to and echo the known mainnet address.
	assert.Equal(t, "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", res.TokenAddress)
	assert.Equal(t, "10", res.Price)
}

func TestPriceParamValidation(t *testing.T) {
	tool := NewPriceTool(eth.NewMockRouter())
	ctx := context.Background()

	_, err := tool.Execute(ctx, mustArgs(t, map[string]any{}))
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = tool.Execute(ctx, mustArgs(t, map[string]any{"token_symbol": "DOGE"}))
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = tool.Execute(ctx, mustArgs(t, map[string]any{"token_address": "nope"}))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestPriceUpstreamFailureIsNotInvalidParams(t *testing.T) {
	// Empty router: every pair lookup fails upstream.
	tool := NewPriceTool(eth.NewMockRouter())

	_, err := tool.Execute(context.Background(), mustArgs(t, map[string]any{"token_address": uniAddr.Hex()}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidParams)
}

func TestPriceSchema(t *testing.T) {
	tool := NewPriceTool(eth.NewMockRouter())

	assert.Equal(t, "get_token_price", tool.Name())
	assert.NotEmpty(t, tool.Description())
	assert.Equal(t, "object", tool.InputSchema()["type"])
}

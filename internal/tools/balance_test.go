package tools

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etherdeck/eth-trading-mcp/internal/eth"
)

var (
	walletAddr = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	usdcAddr   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	wethAddr   = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	uniAddr    = common.HexToAddress("0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984")
)

func mustArgs(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func execBalance(t *testing.T, tool *BalanceTool, args any) balanceResult {
	t.Helper()
	out, err := tool.Execute(context.Background(), mustArgs(t, args))
	require.NoError(t, err)
	res, ok := out.(balanceResult)
	require.True(t, ok)
	return res
}

func TestBalanceNative(t *testing.T) {
	fiveETH, _ := new(big.Int).SetString("5000000000000000000", 10)
	chain := eth.NewMockClient().WithNativeBalance(walletAddr, fiveETH)
	tool := NewBalanceTool(chain, nil)

	res := execBalance(t, tool, map[string]any{"address": walletAddr.Hex()})

	assert.Equal(t, walletAddr.Hex(), res.Address)
	assert.Equal(t, "5", res.Balance)
	assert.Equal(t, "ETH", res.Symbol)
	assert.Equal(t, uint8(18), res.Decimals)
}

// Native queries report ETH/18 for any address, including empty accounts.
func TestBalanceNativeUnknownAddress(t *testing.T) {
	tool := NewBalanceTool(eth.NewMockClient(), nil)

	res := execBalance(t, tool, map[string]any{"address": uniAddr.Hex()})

	assert.Equal(t, "0", res.Balance)
	assert.Equal(t, "ETH", res.Symbol)
	assert.Equal(t, uint8(18), res.Decimals)
}

func TestBalanceToken(t *testing.T) {
	chain := eth.NewMockClient().
		WithTokenBalance(usdcAddr, walletAddr, big.NewInt(1_000_000_000), 6).
		WithTokenSymbol(usdcAddr, "USDC")
	tool := NewBalanceTool(chain, nil)

	res := execBalance(t, tool, map[string]any{
		"address":       walletAddr.Hex(),
		"token_address": usdcAddr.Hex(),
	})

	assert.Equal(t, "1000", res.Balance)
	assert.Equal(t, "USDC", res.Symbol)
	assert.Equal(t, uint8(6), res.Decimals)
}

func TestBalanceTokenSymbolFailureDegrades(t *testing.T) {
	bal, _ := new(big.Int).SetString("1500000000000000000", 10)
	chain := eth.NewMockClient().
		WithTokenBalance(uniAddr, walletAddr, bal, 18).
		WithSymbolError(errors.New("execution reverted"))
	tool := NewBalanceTool(chain, nil)

	res := execBalance(t, tool, map[string]any{
		"address":       walletAddr.Hex(),
		"token_address": uniAddr.Hex(),
	})

	assert.Equal(t, "1.5", res.Balance)
	assert.Equal(t, "UNKNOWN", res.Symbol)
}

func TestBalanceInvalidAddress(t *testing.T) {
	tool := NewBalanceTool(eth.NewMockClient(), nil)

	_, err := tool.Execute(context.Background(), mustArgs(t, map[string]any{"address": "zebra"}))
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = tool.Execute(context.Background(), mustArgs(t, map[string]any{}))
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = tool.Execute(context.Background(), mustArgs(t, map[string]any{
		"address":       walletAddr.Hex(),
		"token_address": "0x123",
	}))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestBalanceSchema(t *testing.T) {
	tool := NewBalanceTool(eth.NewMockClient(), nil)

	assert.Equal(t, "get_balance", tool.Name())
	assert.NotEmpty(t, tool.Description())

	schema := tool.InputSchema()
	assert.Equal(t, "object", schema["type"])
	assert.Contains(t, schema["required"], "address")
}

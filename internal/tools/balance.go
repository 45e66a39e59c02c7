package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
	"github.com/etherdeck/eth-trading-mcp/internal/eth"
	"github.com/etherdeck/eth-trading-mcp/internal/units"
)

// BalanceTool answers get_balance: native ETH balance, or an ERC-20 balance
// when a token contract address is supplied.
type BalanceTool struct {
	chain eth.ChainQuery
	log   *zap.SugaredLogger
}

func NewBalanceTool(chain eth.ChainQuery, log *zap.SugaredLogger) *BalanceTool {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BalanceTool{chain: chain, log: log}
}

type balanceParams struct {
	Address      string `json:"address"`
	TokenAddress string `json:"token_address"`
}

type balanceResult struct {
	Address  string `json:"address"`
	Balance  string `json:"balance"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

func (t *BalanceTool) Name() string { return "get_balance" }

func (t *BalanceTool) Description() string {
	return "Query ETH or ERC20 token balance for a given wallet address"
}

func (t *BalanceTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"address": map[string]any{
				"type":        "string",
				"description": "The wallet address to query",
			},
			"token_address": map[string]any{
				"type":        "string",
				"description": "Optional ERC20 token contract address. If omitted, returns ETH balance",
			},
		},
		"required": []string{"address"},
	}
}

func (t *BalanceTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var p balanceParams
	if err := json.Unmarshal(args, &p); err != nil {
		return nil, invalidParamsf("get_balance: %v", err)
	}
	if p.Address == "" {
		return nil, invalidParamsf("address is required")
	}
	if !common.IsHexAddress(p.Address) {
		return nil, invalidParamsf("invalid wallet address %q", p.Address)
	}
	wallet := common.HexToAddress(p.Address)

	if p.TokenAddress == "" {
		wei, err := t.chain.NativeBalance(ctx, wallet)
		if err != nil {
			return nil, fmt.Errorf("get native balance: %w", err)
		}
		return balanceResult{
			Address:  p.Address,
			Balance:  units.FromBase(wei, constants.NativeDecimals).String(),
			Symbol:   constants.NativeSymbol,
			Decimals: constants.NativeDecimals,
		}, nil
	}

	if !common.IsHexAddress(p.TokenAddress) {
		return nil, invalidParamsf("invalid token address %q", p.TokenAddress)
	}
	token := common.HexToAddress(p.TokenAddress)

	balance, decimals, err := t.chain.TokenBalance(ctx, token, wallet)
	if err != nil {
		return nil, fmt.Errorf("get token balance: %w", err)
	}

	// A failed symbol lookup never fails the call; balance correctness is
	// the contract, symbol display is best effort.
	symbol, err := t.chain.TokenSymbol(ctx, token)
	if err != nil {
		t.log.Warnw("token symbol lookup failed", "token", token.Hex(), "error", err)
		symbol = "UNKNOWN"
	}

	return balanceResult{
		Address:  p.Address,
		Balance:  units.FromBase(balance, decimals).String(),
		Symbol:   symbol,
		Decimals: decimals,
	}, nil
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
	"github.com/etherdeck/eth-trading-mcp/internal/eth"
	"github.com/etherdeck/eth-trading-mcp/internal/units"
)

// Well-known mainnet tokens addressable by symbol in get_token_price.
var knownTokens = map[string]string{
	"WETH": constants.WETHAddr,
	"USDC": constants.USDCAddr,
	"DAI":  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
	"USDT": "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	"UNI":  "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984",
	"LINK": "0x514910771AF9Ca656af840dff83E8264EcF986CA",
	"WBTC": "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599",
	"AAVE": "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9",
	"MKR":  "0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2",
	"SNX":  "0xC011a73ee8576Fb46F5E1c5751cA3B9Fe0af2a6F",
}

// oneToken is the canonical quoting size: 10^18 base units, one unit of an
// 18-decimal token.
var oneToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// PriceTool answers get_token_price with a Uniswap V2 spot quote against
// WETH (ETH quotes) or USDC (USD quotes).
type PriceTool struct {
	router eth.PricingRouter
}

func NewPriceTool(router eth.PricingRouter) *PriceTool {
	return &PriceTool{router: router}
}

type priceParams struct {
	TokenAddress  string `json:"token_address"`
	TokenSymbol   string `json:"token_symbol"`
	QuoteCurrency string `json:"quote_currency"`
}

type priceResult struct {
	TokenAddress  string `json:"token_address"`
	Price         string `json:"price"`
	QuoteCurrency string `json:"quote_currency"`
}

func (t *PriceTool) Name() string { return "get_token_price" }

func (t *PriceTool) Description() string {
	return "Get the current price of a token in USD or ETH using Uniswap V2. " +
		"You can specify the token by address or by symbol (e.g., WETH, USDC, DAI, USDT, UNI, LINK, WBTC, AAVE, MKR, SNX)."
}

func (t *PriceTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"token_address": map[string]any{
				"type":        "string",
				"description": "The token contract address (use either token_address or token_symbol, not both)",
			},
			"token_symbol": map[string]any{
				"type":        "string",
				"description": "The token symbol (e.g., WETH, USDC, DAI, USDT, UNI, LINK, WBTC, AAVE, MKR, SNX). Use either token_address or token_symbol, not both.",
			},
			"quote_currency": map[string]any{
				"type":        "string",
				"description": "Quote currency: 'USD' or 'ETH' (default: USD)",
				"enum":        []string{"USD", "ETH"},
			},
		},
		"oneOf": []any{
			map[string]any{"required": []string{"token_address"}},
			map[string]any{"required": []string{"token_symbol"}},
		},
	}
}

func (t *PriceTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	p := priceParams{QuoteCurrency: "USD"}
	if err := json.Unmarshal(args, &p); err != nil {
		return nil, invalidParamsf("get_token_price: %v", err)
	}

	tokenStr := p.TokenAddress
	if tokenStr == "" {
		if p.TokenSymbol == "" {
			return nil, invalidParamsf("either token_address or token_symbol must be provided")
		}
		addr, ok := knownTokens[strings.ToUpper(p.TokenSymbol)]
		if !ok {
			return nil, invalidParamsf("unknown token symbol %q", p.TokenSymbol)
		}
		tokenStr = addr
	}
	if !common.IsHexAddress(tokenStr) {
		return nil, invalidParamsf("invalid token address %q", tokenStr)
	}
	token := common.HexToAddress(tokenStr)

	var price string
	if strings.ToUpper(p.QuoteCurrency) == constants.NativeSymbol {
		out, err := t.router.AmountOut(ctx, token, common.HexToAddress(constants.WETHAddr), oneToken)
		if err != nil {
			return nil, fmt.Errorf("get price: %w", err)
		}
		price = units.Ratio(out, oneToken).String()
	} else {
		out, err := t.router.AmountOut(ctx, token, common.HexToAddress(constants.USDCAddr), oneToken)
		if err != nil {
			return nil, fmt.Errorf("get price: %w", err)
		}
		// USDC carries 6 decimals against the 18-decimal quoting base.
		rescale := int32(constants.NativeDecimals - constants.USDCDecimals)
		price = units.Ratio(out, oneToken).Shift(rescale).String()
	}

	return priceResult{
		TokenAddress:  tokenStr,
		Price:         price,
		QuoteCurrency: p.QuoteCurrency,
	}, nil
}

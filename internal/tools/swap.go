package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
	"github.com/etherdeck/eth-trading-mcp/internal/eth"
	"github.com/etherdeck/eth-trading-mcp/internal/units"
)

const defaultSlippagePct = 0.5

// SwapTool answers swap_tokens: a quote-plus-gas-estimate simulation of a
// Uniswap V2 swap. It never signs or submits a transaction.
type SwapTool struct {
	chain  eth.ChainQuery
	router eth.PricingRouter
}

func NewSwapTool(chain eth.ChainQuery, router eth.PricingRouter) *SwapTool {
	return &SwapTool{chain: chain, router: router}
}

type swapParams struct {
	FromToken         string  `json:"from_token"`
	ToToken           string  `json:"to_token"`
	Amount            string  `json:"amount"`
	SlippageTolerance float64 `json:"slippage_tolerance"`
}

type swapResult struct {
	FromToken          string  `json:"from_token"`
	ToToken            string  `json:"to_token"`
	AmountIn           string  `json:"amount_in"`
	EstimatedAmountOut string  `json:"estimated_amount_out"`
	MinimumAmountOut   string  `json:"minimum_amount_out"`
	GasEstimate        string  `json:"gas_estimate"`
	GasPriceGwei       string  `json:"gas_price_gwei"`
	EstimatedGasCost   string  `json:"estimated_gas_cost_eth"`
	SlippageTolerance  float64 `json:"slippage_tolerance"`
}

func (t *SwapTool) Name() string { return "swap_tokens" }

func (t *SwapTool) Description() string {
	return "Simulate a token swap on Uniswap V2. Returns estimated output and gas costs without executing the transaction."
}

func (t *SwapTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"from_token": map[string]any{
				"type":        "string",
				"description": "Address of the token to swap from",
			},
			"to_token": map[string]any{
				"type":        "string",
				"description": "Address of the token to swap to",
			},
			"amount": map[string]any{
				"type":        "string",
				"description": "Amount to swap (in human-readable format, e.g., '1.5' for 1.5 tokens)",
			},
			"slippage_tolerance": map[string]any{
				"type":        "number",
				"description": "Slippage tolerance in percentage (default: 0.5)",
			},
		},
		"required": []string{"from_token", "to_token", "amount"},
	}
}

func (t *SwapTool) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	p := swapParams{SlippageTolerance: defaultSlippagePct}
	if err := json.Unmarshal(args, &p); err != nil {
		return nil, invalidParamsf("swap_tokens: %v", err)
	}
	if !common.IsHexAddress(p.FromToken) {
		return nil, invalidParamsf("invalid from_token address %q", p.FromToken)
	}
	if !common.IsHexAddress(p.ToToken) {
		return nil, invalidParamsf("invalid to_token address %q", p.ToToken)
	}
	if p.Amount == "" {
		return nil, invalidParamsf("amount is required")
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return nil, invalidParamsf("invalid amount %q: %v", p.Amount, err)
	}

	// The source token's real precision is never queried; 18 decimals is
	// assumed unconditionally, matching the reference behavior.
	amountIn, err := units.ToBase(amount, constants.NativeDecimals)
	if err != nil {
		return nil, invalidParamsf("convert amount: %v", err)
	}

	from := common.HexToAddress(p.FromToken)
	to := common.HexToAddress(p.ToToken)
	wallet := t.chain.WalletAddress()

	sim, err := t.router.SimulateSwap(ctx, from, to, amountIn, wallet)
	if err != nil {
		return nil, fmt.Errorf("simulate swap: %w", err)
	}

	amountOut := decimal.NewFromBigInt(sim.AmountOut, 0)
	minimumOut := units.MinimumAfterSlippage(amountOut, p.SlippageTolerance)

	return swapResult{
		FromToken:          p.FromToken,
		ToToken:            p.ToToken,
		AmountIn:           p.Amount,
		EstimatedAmountOut: amountOut.Shift(-constants.NativeDecimals).String(),
		MinimumAmountOut:   minimumOut.Shift(-constants.NativeDecimals).String(),
		GasEstimate:        sim.GasEstimate.String(),
		GasPriceGwei:       units.FromBase(sim.GasPrice, 9).String(),
		EstimatedGasCost:   units.FromBase(sim.GasCost, constants.NativeDecimals).String(),
		SlippageTolerance:  p.SlippageTolerance,
	}, nil
}

package eth

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
)

// SwapSimulation is the full result of a simulated swap. All quantities are
// integer base units and GasCost is always GasEstimate * GasPrice exactly.
type SwapSimulation struct {
	AmountIn    *big.Int
	AmountOut   *big.Int
	GasEstimate *big.Int
	GasPrice    *big.Int
	GasCost     *big.Int
}

// PricingRouter quotes swaps against an automated-market-maker router.
type PricingRouter interface {
	// AmountOut returns the quoted output amount for swapping amountIn of
	// from into to along the direct pair path.
	AmountOut(ctx context.Context, from, to common.Address, amountIn *big.Int) (*big.Int, error)
	// SimulateSwap quotes the swap and estimates its gas. The transaction
	// is never signed or submitted.
	SimulateSwap(ctx context.Context, from, to common.Address, amountIn *big.Int, recipient common.Address) (*SwapSimulation, error)
}

const routerABIJSON = `[
	{"name":"getAmountsOut","type":"function","stateMutability":"view","inputs":[{"name":"amountIn","type":"uint256"},{"name":"path","type":"address[]"}],"outputs":[{"name":"amounts","type":"uint256[]"}]},
	{"name":"swapExactTokensForTokens","type":"function","stateMutability":"nonpayable","inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"outputs":[{"name":"amounts","type":"uint256[]"}]}
]`

var routerABI = mustParseABI(routerABIJSON)

// RouterClient is the live PricingRouter against the Uniswap V2 router.
type RouterClient struct {
	rpc    *ethclient.Client
	router common.Address
}

var _ PricingRouter = (*RouterClient)(nil)

func NewRouterClient(rpc *ethclient.Client) *RouterClient {
	return &RouterClient{
		rpc:    rpc,
		router: common.HexToAddress(constants.UniswapV2Router),
	}
}

func (r *RouterClient) AmountOut(ctx context.Context, from, to common.Address, amountIn *big.Int) (*big.Int, error) {
	path := []common.Address{from, to}
	data, err := routerABI.Pack("getAmountsOut", amountIn, path)
	if err != nil {
		return nil, fmt.Errorf("eth: pack getAmountsOut: %w", err)
	}

	res, err := r.rpc.CallContract(ctx, ethereum.CallMsg{To: &r.router, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth: call getAmountsOut: %w", err)
	}

	out, err := routerABI.Unpack("getAmountsOut", res)
	if err != nil {
		return nil, fmt.Errorf("eth: decode getAmountsOut: %w", err)
	}
	amounts, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("eth: unexpected getAmountsOut return type %T", out[0])
	}
	if len(amounts) < 2 {
		return big.NewInt(0), nil
	}
	return amounts[len(amounts)-1], nil
}

func (r *RouterClient) SimulateSwap(ctx context.Context, from, to common.Address, amountIn *big.Int, recipient common.Address) (*SwapSimulation, error) {
	amountOut, err := r.AmountOut(ctx, from, to, amountIn)
	if err != nil {
		return nil, err
	}

	// Estimate gas for the would-be swap with no slippage floor and an
	// unbounded deadline. Nodes routinely refuse to estimate swaps the
	// sender cannot fund, so fall back to the reference default.
	path := []common.Address{from, to}
	deadline := new(big.Int).SetUint64(math.MaxUint64)
	data, err := routerABI.Pack("swapExactTokensForTokens", amountIn, big.NewInt(0), path, recipient, deadline)
	if err != nil {
		return nil, fmt.Errorf("eth: pack swapExactTokensForTokens: %w", err)
	}

	gasEstimate := big.NewInt(constants.DefaultGasLimit)
	if est, err := r.rpc.EstimateGas(ctx, ethereum.CallMsg{From: recipient, To: &r.router, Data: data}); err == nil {
		gasEstimate = new(big.Int).SetUint64(est)
	}

	gasPrice, err := r.rpc.SuggestGasPrice(ctx)
	if err != nil {
		gasPrice = big.NewInt(constants.DefaultGasPriceWei)
	}

	return &SwapSimulation{
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		GasEstimate: gasEstimate,
		GasPrice:    gasPrice,
		GasCost:     new(big.Int).Mul(gasEstimate, gasPrice),
	}, nil
}

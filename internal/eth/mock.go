package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Deterministic in-memory capability doubles. Tests preload them with fixed
// balances, symbols and simulations so tool behavior is reproducible without
// a network. Production code never constructs these.

type pair struct {
	from common.Address
	to   common.Address
}

type tokenHolding struct {
	balance  *big.Int
	decimals uint8
}

// MockClient implements ChainQuery from preloaded maps. Unknown addresses
// read as zero balances with 18 decimals, mirroring an empty account.
type MockClient struct {
	wallet         common.Address
	nativeBalances map[common.Address]*big.Int
	tokenBalances  map[pair]tokenHolding
	tokenSymbols   map[common.Address]string
	symbolErr      error
}

var _ ChainQuery = (*MockClient)(nil)

func NewMockClient() *MockClient {
	return &MockClient{
		nativeBalances: map[common.Address]*big.Int{},
		tokenBalances:  map[pair]tokenHolding{},
		tokenSymbols:   map[common.Address]string{},
	}
}

func (m *MockClient) WithWallet(addr common.Address) *MockClient {
	m.wallet = addr
	return m
}

func (m *MockClient) WithNativeBalance(addr common.Address, wei *big.Int) *MockClient {
	m.nativeBalances[addr] = wei
	return m
}

func (m *MockClient) WithTokenBalance(token, holder common.Address, balance *big.Int, decimals uint8) *MockClient {
	m.tokenBalances[pair{token, holder}] = tokenHolding{balance, decimals}
	return m
}

func (m *MockClient) WithTokenSymbol(token common.Address, symbol string) *MockClient {
	m.tokenSymbols[token] = symbol
	return m
}

// WithSymbolError makes every TokenSymbol call fail, for exercising the
// degraded-symbol path.
func (m *MockClient) WithSymbolError(err error) *MockClient {
	m.symbolErr = err
	return m
}

func (m *MockClient) WalletAddress() common.Address { return m.wallet }

func (m *MockClient) NativeBalance(_ context.Context, addr common.Address) (*big.Int, error) {
	if bal, ok := m.nativeBalances[addr]; ok {
		return bal, nil
	}
	return big.NewInt(0), nil
}

func (m *MockClient) TokenBalance(_ context.Context, token, holder common.Address) (*big.Int, uint8, error) {
	if h, ok := m.tokenBalances[pair{token, holder}]; ok {
		return h.balance, h.decimals, nil
	}
	return big.NewInt(0), 18, nil
}

func (m *MockClient) TokenSymbol(_ context.Context, token common.Address) (string, error) {
	if m.symbolErr != nil {
		return "", m.symbolErr
	}
	if sym, ok := m.tokenSymbols[token]; ok {
		return sym, nil
	}
	return "UNKNOWN", nil
}

// MockRouter implements PricingRouter from preloaded per-pair quotes.
// Unlike MockClient it fails on unknown pairs, since a missing quote would
// otherwise silently price everything at zero.
type MockRouter struct {
	amountsOut  map[pair]*big.Int
	simulations map[pair]*SwapSimulation
}

var _ PricingRouter = (*MockRouter)(nil)

func NewMockRouter() *MockRouter {
	return &MockRouter{
		amountsOut:  map[pair]*big.Int{},
		simulations: map[pair]*SwapSimulation{},
	}
}

func (m *MockRouter) WithAmountOut(from, to common.Address, out *big.Int) *MockRouter {
	m.amountsOut[pair{from, to}] = out
	return m
}

func (m *MockRouter) WithSimulation(from, to common.Address, sim *SwapSimulation) *MockRouter {
	m.simulations[pair{from, to}] = sim
	return m
}

func (m *MockRouter) AmountOut(_ context.Context, from, to common.Address, _ *big.Int) (*big.Int, error) {
	if out, ok := m.amountsOut[pair{from, to}]; ok {
		return out, nil
	}
	return nil, fmt.Errorf("eth: no quote for pair %s -> %s", from.Hex(), to.Hex())
}

func (m *MockRouter) SimulateSwap(_ context.Context, from, to common.Address, _ *big.Int, _ common.Address) (*SwapSimulation, error) {
	if sim, ok := m.simulations[pair{from, to}]; ok {
		return sim, nil
	}
	return nil, fmt.Errorf("eth: no simulation for pair %s -> %s", from.Hex(), to.Hex())
}

// Package eth holds the two chain-facing capabilities: a read-only query
// client for balances and token metadata, and a Uniswap V2 pricing router.
// Both are defined as interfaces so tools can be driven by the in-memory
// doubles in mock.go instead of a live endpoint.
package eth

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ChainQuery answers read-only account and token questions.
type ChainQuery interface {
	// NativeBalance returns the ETH balance of addr in wei.
	NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error)
	// TokenBalance returns the ERC-20 balance of holder in base units,
	// together with the token's decimal precision.
	TokenBalance(ctx context.Context, token, holder common.Address) (*big.Int, uint8, error)
	// TokenSymbol returns the ERC-20 symbol string.
	TokenSymbol(ctx context.Context, token common.Address) (string, error)
	// WalletAddress is the caller's own address, derived from the
	// configured private key. Nothing is ever signed with that key.
	WalletAddress() common.Address
}

const erc20ABIJSON = `[
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]}
]`

var erc20ABI = mustParseABI(erc20ABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("eth: parse ABI: %v", err))
	}
	return parsed
}

// Client is the live ChainQuery backed by an Ethereum JSON-RPC endpoint.
type Client struct {
	rpc     *ethclient.Client
	wallet  common.Address
	chainID uint64
}

var _ ChainQuery = (*Client)(nil)

// NewClient dials the RPC endpoint and derives the wallet address from the
// hex private key (with or without 0x prefix).
func NewClient(ctx context.Context, rpcURL, privateKey string, chainID uint64) (*Client, error) {
	rpc, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("eth: dial rpc endpoint: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("eth: parse private key: %w", err)
	}

	return &Client{
		rpc:     rpc,
		wallet:  crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}, nil
}

// Backend exposes the underlying RPC client for the pricing router.
func (c *Client) Backend() *ethclient.Client { return c.rpc }

func (c *Client) WalletAddress() common.Address { return c.wallet }

// ChainID returns the configured chain identifier.
func (c *Client) ChainID() uint64 { return c.chainID }

func (c *Client) Close() { c.rpc.Close() }

func (c *Client) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	bal, err := c.rpc.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("eth: get native balance: %w", err)
	}
	return bal, nil
}

func (c *Client) TokenBalance(ctx context.Context, token, holder common.Address) (*big.Int, uint8, error) {
	data, err := erc20ABI.Pack("balanceOf", holder)
	if err != nil {
		return nil, 0, fmt.Errorf("eth: pack balanceOf: %w", err)
	}
	res, err := c.call(ctx, token, data)
	if err != nil {
		return nil, 0, fmt.Errorf("eth: call balanceOf: %w", err)
	}
	out, err := erc20ABI.Unpack("balanceOf", res)
	if err != nil {
		return nil, 0, fmt.Errorf("eth: decode balanceOf: %w", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, 0, fmt.Errorf("eth: unexpected balanceOf return type %T", out[0])
	}

	decimals, err := c.tokenDecimals(ctx, token)
	if err != nil {
		return nil, 0, err
	}
	return balance, decimals, nil
}

func (c *Client) tokenDecimals(ctx context.Context, token common.Address) (uint8, error) {
	data, err := erc20ABI.Pack("decimals")
	if err != nil {
		return 0, fmt.Errorf("eth: pack decimals: %w", err)
	}
	res, err := c.call(ctx, token, data)
	if err != nil {
		return 0, fmt.Errorf("eth: call decimals: %w", err)
	}
	out, err := erc20ABI.Unpack("decimals", res)
	if err != nil {
		return 0, fmt.Errorf("eth: decode decimals: %w", err)
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("eth: unexpected decimals return type %T", out[0])
	}
	return decimals, nil
}

func (c *Client) TokenSymbol(ctx context.Context, token common.Address) (string, error) {
	data, err := erc20ABI.Pack("symbol")
	if err != nil {
		return "", fmt.Errorf("eth: pack symbol: %w", err)
	}
	res, err := c.call(ctx, token, data)
	if err != nil {
		return "", fmt.Errorf("eth: call symbol: %w", err)
	}
	out, err := erc20ABI.Unpack("symbol", res)
	if err != nil {
		return "", fmt.Errorf("eth: decode symbol: %w", err)
	}
	symbol, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("eth: unexpected symbol return type %T", out[0])
	}
	return symbol, nil
}

func (c *Client) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return c.rpc.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

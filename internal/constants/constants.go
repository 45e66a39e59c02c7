package constants

const (
	AppName = "eth-trading-mcp"

	// MCP protocol revision this server speaks.
	ProtocolVersion = "2024-11-05"

	NativeSymbol   = "ETH"
	NativeDecimals = 18

	// Mainnet reference contracts.
	UniswapV2Router = "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"
	WETHAddr        = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	USDCAddr        = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

	// USDC carries 6 decimals; USD quotes are rescaled against the
	// assumed 18-decimal quoting base.
	USDCDecimals = 6

	// Fallbacks when the node refuses to estimate a simulated swap.
	DefaultGasLimit    = 200_000
	DefaultGasPriceWei = 50_000_000_000 // 50 gwei

	DefaultChainID = 1
)

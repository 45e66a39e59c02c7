package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "https://mainnet.example/v3/key")
	t.Setenv("PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	t.Setenv("CHAIN_ID", "11155111")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.example/v3/key", cfg.EthRPCURL)
	assert.Equal(t, uint64(11155111), cfg.ChainID)
}

func TestLoadDefaultsChainID(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "https://mainnet.example")
	t.Setenv("PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	t.Setenv("CHAIN_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.ChainID)
}

func TestLoadRequiresRPCURL(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "")
	t.Setenv("PRIVATE_KEY", "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")

	_, err := Load()
	assert.ErrorContains(t, err, "ETH_RPC_URL")
}

func TestLoadRequiresPrivateKey(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "https://mainnet.example")
	t.Setenv("PRIVATE_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "PRIVATE_KEY")
}

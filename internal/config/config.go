package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
)

// Config carries the three process inputs. The private key is used only to
// derive the caller's own address; nothing in this server signs with it.
type Config struct {
	EthRPCURL  string
	PrivateKey string
	ChainID    uint64
}

// Load reads configuration from the environment, merging an optional .env
// file in the working directory first. CHAIN_ID defaults to mainnet.
func Load() (*Config, error) {
	v := viper.New()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetDefault("CHAIN_ID", constants.DefaultChainID)

	cfg := &Config{
		EthRPCURL:  strings.TrimSpace(v.GetString("ETH_RPC_URL")),
		PrivateKey: strings.TrimSpace(v.GetString("PRIVATE_KEY")),
		ChainID:    v.GetUint64("CHAIN_ID"),
	}

	if cfg.EthRPCURL == "" {
		return nil, fmt.Errorf("config: ETH_RPC_URL not set in environment")
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("config: PRIVATE_KEY not set in environment")
	}
	if cfg.ChainID == 0 {
		return nil, fmt.Errorf("config: invalid CHAIN_ID")
	}
	return cfg, nil
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/etherdeck/eth-trading-mcp/internal/config"
	"github.com/etherdeck/eth-trading-mcp/internal/eth"
	"github.com/etherdeck/eth-trading-mcp/internal/mcp"
	"github.com/etherdeck/eth-trading-mcp/internal/tools"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	// stdout carries the protocol; everything else goes to stderr.
	log.Infow("starting eth-trading-mcp",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	client, err := eth.NewClient(ctx, cfg.EthRPCURL, cfg.PrivateKey, cfg.ChainID)
	if err != nil {
		log.Fatalw("failed to init ethereum client", "error", err)
	}
	defer client.Close()

	router := eth.NewRouterClient(client.Backend())

	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewBalanceTool(client, log),
		tools.NewPriceTool(router),
		tools.NewSwapTool(client, router),
	} {
		if err := registry.Register(tool); err != nil {
			log.Fatalw("failed to register tool", "tool", tool.Name(), "error", err)
		}
	}

	server := mcp.NewServer(registry, Version, log)

	log.Infow("server ready, listening on stdio",
		"chain_id", cfg.ChainID,
		"wallet", client.WalletAddress().Hex(),
	)
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalw("server terminated", "error", err)
	}
	log.Infow("shutdown complete")
}

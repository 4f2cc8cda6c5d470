// Package main runs the Radiant chain syncer daemon.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/decode"
	"github.com/Radiant-Core/rxindexer/internal/metrics"
	"github.com/Radiant-Core/rxindexer/internal/node"
	"github.com/Radiant-Core/rxindexer/internal/store/postgres"
	syncer "github.com/Radiant-Core/rxindexer/internal/sync"
)

type config struct {
	PostgresDSN string `long:"postgres-dsn" env:"RXD_SYNCER_POSTGRES_DSN" description:"PostgreSQL DSN" required:"true"`
	Network     string `long:"network" env:"RXD_SYNCER_NETWORK" description:"network name (mainnet, testnet, regtest)" default:"mainnet"`

	RPCURL      string        `long:"rpc-url" env:"RXD_SYNCER_RPC_URL" description:"Radiant node RPC URL" default:"http://127.0.0.1:7332"`
	RPCUser     string        `long:"rpc-user" env:"RXD_SYNCER_RPC_USER" description:"Radiant node RPC username"`
	RPCPassword string        `long:"rpc-password" env:"RXD_SYNCER_RPC_PASSWORD" description:"Radiant node RPC password"`
	RPCTimeout  time.Duration `long:"rpc-timeout" env:"RXD_SYNCER_RPC_TIMEOUT" description:"per-call RPC timeout" default:"1m"`

	ChunkSize    uint64 `long:"chunk-size" env:"RXD_SYNCER_CHUNK_SIZE" description:"blocks per ingestion chunk" default:"500"`
	Workers      int    `long:"workers" env:"RXD_SYNCER_WORKERS" description:"concurrent fetch+decode workers" default:"8"`
	BlockRetries int    `long:"block-retries" env:"RXD_SYNCER_BLOCK_RETRIES" description:"fetch+decode attempts per block" default:"3"`

	CheckpointInterval    uint64 `long:"checkpoint-interval" env:"RXD_SYNCER_CHECKPOINT_INTERVAL" description:"blocks between checkpoints" default:"1000"`
	CheckpointKeep        int    `long:"checkpoint-keep" env:"RXD_SYNCER_CHECKPOINT_KEEP" description:"checkpoints always retained" default:"16"`
	CheckpointMinInterval uint64 `long:"checkpoint-min-interval" env:"RXD_SYNCER_CHECKPOINT_MIN_INTERVAL" description:"minimum block spacing of retained checkpoints" default:"100"`

	MaxReorgDepth     uint64        `long:"max-reorg-depth" env:"RXD_SYNCER_MAX_REORG_DEPTH" description:"max blocks searched for a common ancestor" default:"200"`
	Continuous        bool          `long:"continuous" env:"RXD_SYNCER_CONTINUOUS" description:"keep following the chain after catching up"`
	IdlePause         time.Duration `long:"idle-pause" env:"RXD_SYNCER_IDLE_PAUSE" description:"pause between passes when caught up" default:"10s"`
	RecomputeInterval time.Duration `long:"recompute-interval" env:"RXD_SYNCER_RECOMPUTE_INTERVAL" description:"holder balance recompute interval" default:"30s"`

	MetricsAddr string `long:"metrics-addr" env:"RXD_SYNCER_METRICS_ADDR" description:"prometheus listen address" default:":9091"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("rxd syncer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	store, err := postgres.New(ctx, cfg.PostgresDSN, metrics.NewStore(), logger.Named("store"))
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	raw, err := node.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		raw.Shutdown()
		raw.WaitForShutdown()
	}()

	policy := node.DefaultRetryPolicy()
	policy.CallTimeout = cfg.RPCTimeout
	client := node.New(raw, metrics.NewNodeRPC(cfg.Network), logger.Named("node"), policy)
	decoder, err := decode.New(cfg.Network, client, logger.Named("decoder"))
	if err != nil {
		return fmt.Errorf("init decoder: %w", err)
	}

	orchestrator, err := syncer.New(client, decoder, store, metrics.NewSyncer(), logger.Named("syncer"), syncer.Config{
		ChunkSize:             cfg.ChunkSize,
		Workers:               cfg.Workers,
		BlockRetries:          cfg.BlockRetries,
		CheckpointInterval:    cfg.CheckpointInterval,
		CheckpointKeep:        cfg.CheckpointKeep,
		CheckpointMinInterval: cfg.CheckpointMinInterval,
		MaxReorgDepth:         cfg.MaxReorgDepth,
		Continuous:            cfg.Continuous,
		IdlePause:             cfg.IdlePause,
		RecomputeInterval:     cfg.RecomputeInterval,
	})
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}

	serveMetrics(ctx, cfg.MetricsAddr, logger)

	return orchestrator.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}

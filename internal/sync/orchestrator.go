package sync

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Radiant-Core/rxindexer/internal/clock"
	"github.com/Radiant-Core/rxindexer/internal/model"
	"github.com/Radiant-Core/rxindexer/pkg/batcher"
)

// ErrAlreadySyncing is returned when a sync is requested while another one
// holds the persisted single-flight flag. Callers are rejected, never queued.
var ErrAlreadySyncing = errors.New("sync already in progress")

// Config is the operational surface of the syncer. Zero values fall back to
// defaults.
type Config struct {
	ChunkSize             uint64
	Workers               int
	BlockRetries          int
	CheckpointInterval    uint64
	CheckpointKeep        int
	CheckpointMinInterval uint64
	MaxReorgDepth         uint64
	Continuous            bool
	IdlePause             time.Duration
	RecomputeInterval     time.Duration
}

func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkerCount
	}
	if c.BlockRetries <= 0 {
		c.BlockRetries = defaultBlockRetries
	}
	if c.CheckpointInterval == 0 {
		c.CheckpointInterval = defaultCheckpointInterval
	}
	if c.CheckpointKeep <= 0 {
		c.CheckpointKeep = defaultCheckpointKeep
	}
	if c.CheckpointMinInterval == 0 {
		c.CheckpointMinInterval = defaultCheckpointMinInterval
	}
	if c.MaxReorgDepth == 0 {
		c.MaxReorgDepth = defaultMaxReorgDepth
	}
	if c.IdlePause <= 0 {
		c.IdlePause = defaultIdlePause
	}
	if c.RecomputeInterval <= 0 {
		c.RecomputeInterval = defaultRecomputeInterval
	}
	return c
}

// Orchestrator is the top-level sync state machine. It runs the reorg check
// before each pass, delegates ranges to the scheduler, keeps holder
// aggregates fresh via a background batcher and exposes the status and
// control surface consumed by operators.
type Orchestrator struct {
	source      Source
	store       Store
	metrics     Metrics
	logger      *zap.Logger
	sleep       func(context.Context, time.Duration) error
	cfg         Config
	scheduler   *scheduler
	reorg       *reorgResolver
	checkpoints *checkpointManager
	dirty       *batcher.Batcher[string]
}

func New(source Source, decoder BlockDecoder, store Store, metrics Metrics, logger *zap.Logger, cfg Config) (*Orchestrator, error) {
	if source == nil {
		return nil, errors.New("source is required")
	}
	if decoder == nil {
		return nil, errors.New("block decoder is required")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	cfg = cfg.withDefaults()

	o := &Orchestrator{
		source:  source,
		store:   store,
		metrics: metrics,
		logger:  logger,
		sleep:   clock.SleepWithContext,
		cfg:     cfg,
	}
	o.checkpoints = &checkpointManager{
		store:       store,
		logger:      logger.Named("checkpoints"),
		interval:    cfg.CheckpointInterval,
		keep:        cfg.CheckpointKeep,
		minInterval: cfg.CheckpointMinInterval,
	}
	o.dirty = batcher.New(logger.Named("holders"), store.RecomputeHolders,
		dirtyAddressBatchSize, cfg.RecomputeInterval, dirtyAddressFlushRPS)
	o.reorg = &reorgResolver{
		source:   source,
		store:    store,
		metrics:  metrics,
		logger:   logger.Named("reorg"),
		maxDepth: cfg.MaxReorgDepth,
	}
	o.scheduler = &scheduler{
		source:       source,
		decoder:      decoder,
		store:        store,
		metrics:      metrics,
		logger:       logger.Named("scheduler"),
		chunkSize:    cfg.ChunkSize,
		workers:      cfg.Workers,
		blockRetries: cfg.BlockRetries,
		onCommit:     o.afterCommit,
	}
	return o, nil
}

func (o *Orchestrator) afterCommit(ctx context.Context, res model.CommitResult) {
	for _, address := range res.DirtyAddresses {
		if err := o.dirty.Add(ctx, address); err != nil {
			return
		}
	}
	o.checkpoints.Record(ctx, res)
}

// StartSync runs sync passes until caught up, or indefinitely in continuous
// mode. It claims the persisted single-flight flag for its whole duration;
// an overlapping call fails immediately with ErrAlreadySyncing.
func (o *Orchestrator) StartSync(ctx context.Context, continuous bool) (caughtUp bool, err error) {
	claimed, err := o.store.SetSyncing(ctx, true)
	if err != nil {
		return false, err
	}
	if !claimed {
		return false, ErrAlreadySyncing
	}
	defer func() {
		// Release even when the context that drove the pass is gone.
		if _, releaseErr := o.store.SetSyncing(context.WithoutCancel(ctx), false); releaseErr != nil {
			o.logger.Error("syncing flag not released", zap.Error(releaseErr))
		}
	}()

	o.dirty.Start(ctx)
	defer o.dirty.Stop()

	for {
		caughtUp, err = o.pass(ctx)
		if err != nil {
			_ = o.store.RecordSyncError(context.WithoutCancel(ctx), err.Error())
			if ctx.Err() != nil || errors.Is(err, ErrReorgTooDeep) || !continuous {
				return false, err
			}
			o.logger.Warn("sync pass failed, backing off",
				zap.Error(err), zap.Duration("pause", o.cfg.IdlePause))
			if sleepErr := o.sleep(ctx, o.cfg.IdlePause); sleepErr != nil {
				return false, sleepErr
			}
			continue
		}
		_ = o.store.RecordSyncError(ctx, "")

		if !continuous {
			return caughtUp, nil
		}
		if caughtUp {
			if sleepErr := o.sleep(ctx, o.cfg.IdlePause); sleepErr != nil {
				return true, sleepErr
			}
		}
	}
}

// pass performs one reorg check plus one forward range. Caught up means the
// stored tip reached the node tip during this pass.
func (o *Orchestrator) pass(ctx context.Context) (caughtUp bool, err error) {
	started := time.Now()
	defer func() {
		o.metrics.ObservePass(err, started)
	}()

	if _, err = o.reorg.Check(ctx); err != nil {
		return false, err
	}

	state, err := o.store.LoadSyncState(ctx)
	if err != nil {
		return false, err
	}
	nodeHeight, err := o.source.Height(ctx)
	if err != nil {
		return false, err
	}
	if state.CurrentHeight >= nodeHeight {
		return true, nil
	}

	o.logger.Info("sync pass starting",
		zap.Uint64("from", state.CurrentHeight+1), zap.Uint64("to", nodeHeight))
	committed, err := o.scheduler.SyncRange(ctx, state.CurrentHeight+1, nodeHeight)
	if err != nil {
		return false, err
	}
	return committed >= nodeHeight, nil
}

// Run drives continuous operation for the daemon entrypoint. Any persisted
// syncing claim found at startup belongs to a run that died holding it, so
// it is reclaimed before the first pass; the flag rejects concurrent
// callers, not our own restart.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.store.ClearSyncing(ctx); err != nil {
		return err
	}
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := o.StartSync(ctx, o.cfg.Continuous)
		if err == nil {
			if !o.cfg.Continuous {
				return nil
			}
			continue
		}
		if errors.Is(err, ErrReorgTooDeep) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.logger.Warn("sync aborted, backing off", zap.Error(err))
		if sleepErr := o.sleep(ctx, o.cfg.IdlePause); sleepErr != nil {
			return sleepErr
		}
	}
}

// Status reports sync progress for external read-only consumption.
func (o *Orchestrator) Status(ctx context.Context) (model.SyncStatus, error) {
	state, err := o.store.LoadSyncState(ctx)
	if err != nil {
		return model.SyncStatus{}, err
	}
	nodeHeight, err := o.source.Height(ctx)
	if err != nil {
		return model.SyncStatus{}, err
	}

	progress := 1.0
	if nodeHeight > 0 {
		progress = float64(state.CurrentHeight) / float64(nodeHeight)
	}
	if progress > 1 {
		progress = 1
	}
	return model.SyncStatus{
		Height:     state.CurrentHeight,
		NodeHeight: nodeHeight,
		Progress:   progress,
		IsSyncing:  state.IsSyncing,
		LastError:  state.LastError,
	}, nil
}

// Resync wipes all derived state. Destructive; rejected while a sync holds
// the single-flight flag.
func (o *Orchestrator) Resync(ctx context.Context) error {
	state, err := o.store.LoadSyncState(ctx)
	if err != nil {
		return err
	}
	if state.IsSyncing {
		return ErrAlreadySyncing
	}
	return o.store.Resync(ctx)
}

// ForceReorgCheck runs one divergence check outside the normal pass cycle.
func (o *Orchestrator) ForceReorgCheck(ctx context.Context) (rolledBack bool, err error) {
	claimed, err := o.store.SetSyncing(ctx, true)
	if err != nil {
		return false, err
	}
	if !claimed {
		return false, ErrAlreadySyncing
	}
	defer func() {
		if _, releaseErr := o.store.SetSyncing(context.WithoutCancel(ctx), false); releaseErr != nil {
			o.logger.Error("syncing flag not released", zap.Error(releaseErr))
		}
	}()

	return o.reorg.Check(ctx)
}

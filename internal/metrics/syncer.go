package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncerPassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "passes_total",
		Help:      "Count of sync passes.",
	}, []string{"status"})
	syncerPassDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "pass_duration_seconds",
		Help:      "Duration of sync passes.",
		Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
	}, []string{"status"})
	syncerChunksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "chunks_total",
		Help:      "Count of ingested chunks.",
	}, []string{"status"})
	syncerChunkBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "chunk_blocks",
		Help:      "Blocks per ingested chunk.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500},
	}, []string{"status"})
	syncerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "blocks_total",
		Help:      "Count of committed blocks.",
	}, []string{"status"})
	syncerBlockCommitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "block_commit_duration_seconds",
		Help:      "Duration of atomic block commits.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	syncerBlockHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "block_height",
		Help:      "Highest committed block height.",
	})
	syncerReorgChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "reorg_checks_total",
		Help:      "Count of chain divergence checks.",
	}, []string{"status"})
	syncerRollbackDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "rollback_depth_blocks",
		Help:      "Blocks discarded per reorg rollback.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 200},
	})
	syncerRollbackDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rxindexer",
		Subsystem: "syncer",
		Name:      "rollback_duration_seconds",
		Help:      "Duration of reorg rollbacks.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Syncer tracks metrics for the sync orchestrator and scheduler.
type Syncer struct{}

// NewSyncer creates a Syncer metrics collector.
func NewSyncer() *Syncer {
	return &Syncer{}
}

// ObservePass records one sync pass.
func (m Syncer) ObservePass(err error, started time.Time) {
	status := outcome(err)
	syncerPassesTotal.WithLabelValues(status).Inc()
	syncerPassDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveChunk records one ingested chunk and its size.
func (m Syncer) ObserveChunk(err error, blocks int, started time.Time) {
	status := outcome(err)
	syncerChunksTotal.WithLabelValues(status).Inc()
	syncerChunkBlocks.WithLabelValues(status).Observe(float64(blocks))
}

// ObserveBlock records one block commit and advances the height gauge.
func (m Syncer) ObserveBlock(err error, height uint64, started time.Time) {
	status := outcome(err)
	syncerBlocksTotal.WithLabelValues(status).Inc()
	syncerBlockCommitDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		syncerBlockHeight.Set(float64(height))
	}
}

// ObserveReorgCheck records one divergence check.
func (m Syncer) ObserveReorgCheck(err error, started time.Time) {
	syncerReorgChecksTotal.WithLabelValues(outcome(err)).Inc()
}

// ObserveRollback records the depth and duration of a completed rollback.
func (m Syncer) ObserveRollback(depth uint64, started time.Time) {
	syncerRollbackDepth.Observe(float64(depth))
	syncerRollbackDuration.Observe(time.Since(started).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

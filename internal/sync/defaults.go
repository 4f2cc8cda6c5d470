package sync

import "time"

const (
	defaultChunkSize    uint64 = 500
	defaultWorkerCount         = 8
	defaultBlockRetries        = 3

	defaultCheckpointInterval    uint64 = 1000
	defaultCheckpointKeep               = 16
	defaultCheckpointMinInterval uint64 = 100

	defaultMaxReorgDepth uint64 = 200

	defaultIdlePause         = 10 * time.Second
	defaultRecomputeInterval = 30 * time.Second
	blockRetryDelay          = 2 * time.Second

	dirtyAddressBatchSize = 5000
	dirtyAddressFlushRPS  = 2
)

package etl

import "errors"

// Error kinds surfaced to callers. Check with errors.Is; the wrapped chain
// keeps the underlying driver error.
//
// ErrInvalidConfig means the job itself is malformed and rerunning without a
// fix will fail again. ErrSourceUnavailable and ErrDestinationUnavailable are
// recoverable by rerunning the job: the engine checkpoints the last fully
// completed batch before propagating them. ErrCheckpointUnavailable means
// progress state could not be persisted or cleared; the transfer itself may
// have succeeded, but resumability is no longer guaranteed.
var (
	ErrInvalidConfig          = errors.New("invalid job configuration")
	ErrSourceUnavailable      = errors.New("source unavailable")
	ErrDestinationUnavailable = errors.New("destination unavailable")
	ErrCheckpointUnavailable  = errors.New("checkpoint unavailable")
)

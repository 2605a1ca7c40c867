package engine

import "errors"

// Predefined errors
var (
	// ErrUnknownEngine is returned when an engine name is not recognized
	ErrUnknownEngine = errors.New("querydesk engine: unknown engine")

	// ErrEngineUnavailable is returned when an engine is not compiled into this binary
	ErrEngineUnavailable = errors.New("querydesk engine: engine unavailable in this build")

	// ErrNilDataset is returned when Open is called without a dataset
	ErrNilDataset = errors.New("querydesk engine: dataset is nil")

	// ErrStmtExecContextNotSupported is returned when statement does not support ExecContext
	ErrStmtExecContextNotSupported = errors.New("querydesk engine: statement does not support ExecContext")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("querydesk engine: underlying connection does not support PrepareContext")
)
